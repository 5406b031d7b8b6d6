package cli

import (
	"context"
	"strconv"
	"strings"

	"minflow/internal/models"
)

// AdminView lists all user accounts and supports confirmed deletion.
// Non-admins are redirected away by the guard before any request is made.
func (a *App) AdminView(ctx context.Context) {
	if !a.enter(RequireAdmin) {
		return
	}

	a.println("Loading users...")
	users, err := a.client.ListUsers(ctx)
	if err != nil {
		a.println("Could not load users:", err.Error())
		return
	}

	for {
		if len(users) == 0 {
			a.println("No users found.")
			return
		}

		a.printf("\nUsers (%d):\n", len(users))
		a.printf("  %-5s %-30s %-25s %s\n", "ID", "Email", "Name", "Admin")
		for _, user := range users {
			admin := ""
			if user.IsAdmin {
				admin = "yes"
			}
			a.printf("  %-5d %-30s %-25s %s\n", user.ID, truncate(user.Email, 30), truncate(user.Name, 25), admin)
		}
		a.println("\ndelete <id>, (b)ack")

		choice, err := a.promptString("admin")
		if err != nil {
			return
		}
		fields := strings.Fields(choice)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "b", "back":
			return
		case "delete":
			if len(fields) < 2 {
				a.println("Usage: delete <id>")
				continue
			}
			id, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				a.println("Not a valid user id.")
				continue
			}
			if a.deleteUser(ctx, uint(id)) {
				users = removeUser(users, uint(id))
			}
		default:
			a.println("Unknown choice:", fields[0])
		}
	}
}

// deleteUser asks for confirmation before issuing the request
func (a *App) deleteUser(ctx context.Context, id uint) bool {
	if !a.confirm("Delete this user and all their data?") {
		a.println("Cancelled.")
		return false
	}
	if err := a.client.DeleteUser(ctx, id); err != nil {
		a.println("Delete failed:", err.Error())
		return false
	}
	a.println("User deleted.")
	return true
}

func removeUser(users []models.User, id uint) []models.User {
	filtered := users[:0]
	for _, user := range users {
		if user.ID != id {
			filtered = append(filtered, user)
		}
	}
	return filtered
}
