package jwt

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/peoplekit/payroll-backend-go/internal/domain/user"
)

// Actor is the authenticated principal taken from the access token claims.
type Actor struct {
	UserID     string
	Email      string
	EmployeeID *string
	Role       user.Role
}

// ActorFromContext extracts the acting user from the JWT claims on ctx.
func ActorFromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	actor := Actor{UserID: userID}
	if email, ok := claims["email"].(string); ok {
		actor.Email = email
	}
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		actor.EmployeeID = &employeeID
	}
	if role, ok := claims["role"].(string); ok {
		actor.Role = user.Role(role)
	}

	return actor, nil
}
