package ticket

import (
	"fmt"
	"time"
)

// Attachment is the metadata record of a file uploaded against a ticket.
// Blob storage is handled outside this service; only the reference lives
// here.
type Attachment struct {
	id          uint
	ticketID    uint
	uploaderID  uint
	fileName    string
	contentType string
	sizeBytes   int64
	storagePath string
	createdAt   time.Time
}

func NewAttachment(
	ticketID uint,
	uploaderID uint,
	fileName string,
	contentType string,
	sizeBytes int64,
	storagePath string,
) (*Attachment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if uploaderID == 0 {
		return nil, fmt.Errorf("uploader ID is required")
	}
	if len(fileName) == 0 {
		return nil, fmt.Errorf("file name is required")
	}
	if len(fileName) > 255 {
		return nil, fmt.Errorf("file name exceeds maximum length of 255 characters")
	}
	if sizeBytes <= 0 {
		return nil, fmt.Errorf("size must be positive")
	}
	if len(storagePath) == 0 {
		return nil, fmt.Errorf("storage path is required")
	}

	return &Attachment{
		ticketID:    ticketID,
		uploaderID:  uploaderID,
		fileName:    fileName,
		contentType: contentType,
		sizeBytes:   sizeBytes,
		storagePath: storagePath,
		createdAt:   time.Now(),
	}, nil
}

func ReconstructAttachment(
	id uint,
	ticketID uint,
	uploaderID uint,
	fileName string,
	contentType string,
	sizeBytes int64,
	storagePath string,
	createdAt time.Time,
) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &Attachment{
		id:          id,
		ticketID:    ticketID,
		uploaderID:  uploaderID,
		fileName:    fileName,
		contentType: contentType,
		sizeBytes:   sizeBytes,
		storagePath: storagePath,
		createdAt:   createdAt,
	}, nil
}

func (a *Attachment) ID() uint {
	return a.id
}

func (a *Attachment) TicketID() uint {
	return a.ticketID
}

func (a *Attachment) UploaderID() uint {
	return a.uploaderID
}

func (a *Attachment) FileName() string {
	return a.fileName
}

func (a *Attachment) ContentType() string {
	return a.contentType
}

func (a *Attachment) SizeBytes() int64 {
	return a.sizeBytes
}

func (a *Attachment) StoragePath() string {
	return a.storagePath
}

func (a *Attachment) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Attachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attachment ID cannot be zero")
	}
	a.id = id
	return nil
}
