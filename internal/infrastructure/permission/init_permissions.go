package permission

import (
	"fmt"

	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

// InitDefaultPolicies seeds the baseline role policies. Seeding is
// idempotent; casbin drops duplicate rules on insert.
func InitDefaultPolicies(enforcer *Enforcer, log logger.Interface) error {
	enforcer.mu.Lock()
	defer enforcer.mu.Unlock()

	policies := [][]string{
		// Requesters work with their own tickets; listing visibility is
		// narrowed further inside the use cases.
		{authorization.RoleRequester.String(), "ticket", "create"},
		{authorization.RoleRequester.String(), "ticket", "read"},
		{authorization.RoleRequester.String(), "ticket", "update"},
		{authorization.RoleRequester.String(), "ticket", "transition"},
		{authorization.RoleRequester.String(), "ticket", "assign"},
		{authorization.RoleRequester.String(), "comment", "create"},
		{authorization.RoleRequester.String(), "comment", "read"},
		{authorization.RoleRequester.String(), "attachment", "create"},
		{authorization.RoleRequester.String(), "attachment", "read"},

		// Approvers additionally work the pending queue.
		{authorization.RoleApprover.String(), "approval", "read"},
		{authorization.RoleApprover.String(), "approval", "decide"},

		// Admins manage users and may delete tickets.
		{authorization.RoleAdmin.String(), "ticket", "delete"},
		{authorization.RoleAdmin.String(), "user", "create"},
		{authorization.RoleAdmin.String(), "user", "read"},
		{authorization.RoleAdmin.String(), "user", "update"},
		{authorization.RoleAdmin.String(), "user", "change_role"},
		{authorization.RoleAdmin.String(), "user", "change_status"},
	}

	for _, policy := range policies {
		_, err := enforcer.enforcer.AddPolicy(policy)
		if err != nil {
			log.Errorw("failed to add permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	// Role inheritance: approver extends requester, admin extends approver.
	groupings := [][2]string{
		{authorization.RoleApprover.String(), authorization.RoleRequester.String()},
		{authorization.RoleAdmin.String(), authorization.RoleApprover.String()},
	}
	for _, g := range groupings {
		if err := enforcer.addGroupingPolicy(g[0], g[1]); err != nil {
			log.Errorw("failed to add role inheritance",
				"error", err, "child", g[0], "parent", g[1])
			return err
		}
	}

	if err := enforcer.enforcer.SavePolicy(); err != nil {
		log.Errorw("failed to save default policies", "error", err)
		return fmt.Errorf("failed to save default policies: %w", err)
	}

	log.Info("default permission policies initialized")
	return nil
}
