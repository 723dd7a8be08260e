package models

import (
	"bytes"
	"encoding/json"
)

// Well-known role labels. The role set is open; any other label is stored
// and returned as-is.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is one row of the users table.
type User struct {
	ID           int64
	UserName     string
	PasswordHash string
	Salt         string
	Role         string
}

// UserRole is the public view of a user: name and role only.
type UserRole struct {
	UserName string
	Role     string
}

// UserRoles is an ordered username -> role listing. It marshals to a JSON
// object whose keys keep the slice order.
type UserRoles []UserRole

// MarshalJSON implements json.Marshaler.
func (u UserRoles) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ur := range u {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(ur.UserName)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(ur.Role)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Map returns the listing as a map, dropping the order.
func (u UserRoles) Map() map[string]string {
	m := make(map[string]string, len(u))
	for _, ur := range u {
		m[ur.UserName] = ur.Role
	}
	return m
}
