package errors

import "errors"

var (
	ErrRoleNotFound        = errors.New("role not found")
	ErrRoleConflict        = errors.New("role conflict")
	ErrInvalidRoleData     = errors.New("invalid role data")
	ErrSystemRoleImmutable = errors.New("system roles cannot be modified or deleted")

	ErrDeviceGroupNotFound    = errors.New("device group not found")
	ErrDeviceGroupConflict    = errors.New("device group conflict")
	ErrInvalidDeviceGroupData = errors.New("invalid device group data")

	ErrTemplateNotFound = errors.New("access template not found")
	ErrTemplateConflict = errors.New("access template conflict")

	ErrInvalidDuration   = errors.New("duration is not one of the allowed grant durations")
	ErrNoTemporaryAccess = errors.New("user has no temporary access grant")

	ErrInvalidCadence = errors.New("invalid review cadence")
)
