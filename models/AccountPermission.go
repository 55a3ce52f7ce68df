package models

type PermissionType int16

const (
	PermissionReadOnly PermissionType = iota
	PermissionReadAndWrite
)

// AccountPermission grants a non-owner read or read-write access to an
// account. At most one grant exists per (account, user) pair.
type AccountPermission struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	AccountID      uint           `json:"accountId" gorm:"uniqueIndex:idx_account_user;not null"`
	UserID         uint           `json:"userId" gorm:"uniqueIndex:idx_account_user;not null"`
	User           *User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	PermissionType PermissionType `json:"permissionType" gorm:"type:smallint;not null"`
}
