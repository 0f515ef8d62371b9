package user

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=requester approver admin"`
}

type SetStatusRequest struct {
	Disable bool `json:"disable"`
}
