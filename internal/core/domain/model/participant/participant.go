package participant

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrParticipantIsNotConstructed is returned when a Participant instance was
// not created through its constructor.
var ErrParticipantIsNotConstructed = errors.New(
	"Participant must be created via NewParticipant or RestoreParticipant constructor")

// Role distinguishes the three parties of an order.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	RoleBuyer
	RoleSeller
	RoleDriver
)

// getValidRoleStrings returns a map of only valid Role values.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleBuyer:  "buyer",
		RoleSeller: "seller",
		RoleDriver: "driver",
	}
}

// Validate checks if the Role value is one of buyer, seller or driver.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid participant role", r))
	}
	return nil
}

// String returns the storage label of the role. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getValidRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// RoleFromString maps a storage label back to its Role.
// Unrecognized labels yield RoleUnknown.
func RoleFromString(raw string) Role {
	for role, label := range getValidRoleStrings() {
		if label == raw {
			return role
		}
	}
	return RoleUnknown
}

// Participant is the display identity of an order party. Identity itself
// lives in an external system; only what notifications need is modeled here.
type Participant struct {
	id       kernel.UUID
	username string
	role     Role

	isConstructed bool
}

// NewParticipant creates a participant with a fresh identifier.
func NewParticipant(username string, role Role) (*Participant, error) {
	return RestoreParticipant(kernel.NewUUID(), username, role)
}

// RestoreParticipant recreates a participant from persisted state.
func RestoreParticipant(id kernel.UUID, username string, role Role) (*Participant, error) {
	if err := errors.Join(
		id.Validate(),
		role.Validate(),
		validateUsername(username),
	); err != nil {
		return nil, err
	}

	return &Participant{
		id:            id,
		username:      username,
		role:          role,
		isConstructed: true,
	}, nil
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return errs.NewValueIsRequiredError("username")
	}
	return nil
}

func (p *Participant) Validate() error {
	if !p.isConstructed {
		return ErrParticipantIsNotConstructed
	}
	return nil
}

func (p *Participant) ID() kernel.UUID {
	return p.id
}

func (p *Participant) Username() string {
	return p.username
}

func (p *Participant) Role() Role {
	return p.role
}
