package models

import (
	"fmt"
	"time"
)

// SystemStateENUMType dashboard bootstrap state ENUM
type SystemStateENUMType string

const (
	// SystemStatePreInit no administrator exists yet
	SystemStatePreInit SystemStateENUMType = "PRE_INITIALIZATION"
	// SystemStateInit the first administrator is being created
	SystemStateInit SystemStateENUMType = "INITIALIZING"
	// SystemStateRunning the dashboard has an administrator and is usable
	SystemStateRunning SystemStateENUMType = "RUNNING"
)

// bootstrapStages the bootstrap states, in the order the dashboard passes through them
var bootstrapStages = []SystemStateENUMType{
	SystemStatePreInit, SystemStateInit, SystemStateRunning,
}

func bootstrapStage(state SystemStateENUMType) int {
	for idx, stage := range bootstrapStages {
		if stage == state {
			return idx
		}
	}
	return -1
}

// SystemParams the dashboard bootstrap record
type SystemParams struct {
	// ID param entry ID. It must always be system-parameters
	ID string `json:"id" gorm:"column:id;primaryKey;unique" validate:"required,oneof=system-parameters"`

	// State bootstrap state
	State SystemStateENUMType `json:"state" gorm:"column:state;not null" validate:"required,system_state"`

	// AdministratorID the user created by the bootstrap; set once RUNNING
	AdministratorID *string `json:"administrator_id,omitempty" gorm:"column:administrator_id;default:null" validate:"omitempty,uuid_rfc4122"`

	// CreatedAt entry creation timestamp
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt entry update timestamp
	UpdatedAt time.Time `json:"updated_at"`
}

// Bootstrapped whether the first administrator was created
func (p SystemParams) Bootstrapped() bool {
	return p.State == SystemStateRunning && p.AdministratorID != nil
}

// ValidateNextState bootstrap only moves forward, one stage at a time. Staying in the
// current stage is allowed.
func (p *SystemParams) ValidateNextState(newState SystemStateENUMType) error {
	current := bootstrapStage(p.State)
	if current < 0 {
		return fmt.Errorf("unknown bootstrap state '%s'", p.State)
	}
	next := bootstrapStage(newState)
	if next < 0 {
		return fmt.Errorf("unknown bootstrap state '%s'", newState)
	}
	if next != current && next != current+1 {
		return fmt.Errorf("bootstrap can't move from '%s' to '%s'", p.State, newState)
	}
	return nil
}
