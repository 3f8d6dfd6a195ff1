package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleAndStatusLabels(t *testing.T) {
	assert.Equal(t, "admin", RoleAdmin.String())
	assert.Equal(t, "standard", RoleStandard.String())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role(7).Valid())

	assert.Equal(t, "active", StatusActive.String())
	assert.Equal(t, "inactive", StatusInactive.String())
	assert.Equal(t, StatusInactive, StatusActive.Toggle())
	assert.Equal(t, StatusActive, StatusActive.Toggle().Toggle())
}

func TestUser_Online(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

	u := &User{}
	assert.False(t, u.Online(), "never logged in")

	u.LoginTime = &now
	assert.True(t, u.Online())

	u.LogoutTime = &now
	assert.False(t, u.Online())
}

func TestUser_CloneIsDeep(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	u := &User{
		ID:        1,
		Login:     "bob",
		LoginTime: &now,
		Extra:     map[string]json.RawMessage{"last_exit": json.RawMessage(`"x"`)},
	}

	c := u.Clone()
	require.Equal(t, u, c)

	*c.LoginTime = now.Add(time.Hour)
	c.Extra["last_exit"][1] = 'y'
	c.Login = "alice"

	assert.Equal(t, now, *u.LoginTime)
	assert.Equal(t, `"x"`, string(u.Extra["last_exit"]))
	assert.Equal(t, "bob", u.Login)
}

func TestCollection_NextID(t *testing.T) {
	c := NewCollection()
	assert.Equal(t, 1, c.NextID())

	c.Append(&User{ID: 1, Login: "a"})
	c.Append(&User{ID: 2, Login: "b"})
	assert.Equal(t, 3, c.NextID(), "append-only numbering is count+1")

	_, i := c.FindByLogin("a")
	c.RemoveAt(i)
	assert.Equal(t, 3, c.NextID(), "must not collide with the remaining id 2")
}

func TestCollection_NextID_SkipsDeletedHighestID(t *testing.T) {
	c := NewCollection(&User{ID: 1, Login: "a"}, &User{ID: 2, Login: "b"}, &User{ID: 3, Login: "c"})

	_, i := c.FindByLogin("c")
	c.RemoveAt(i)
	assert.Equal(t, 4, c.NextID())
	assert.Equal(t, 4, c.Clone().NextID())
}

func TestCollection_RemoveAndInsertAt(t *testing.T) {
	a, b, d := &User{Login: "a"}, &User{Login: "b"}, &User{Login: "d"}
	c := NewCollection(a, b, d)

	removed := c.RemoveAt(1)
	assert.Same(t, b, removed)
	assert.Equal(t, []*User{a, d}, c.Users)

	c.InsertAt(1, b)
	assert.Equal(t, []*User{a, b, d}, c.Users)

	u, i := c.FindByLogin("zzz")
	assert.Nil(t, u)
	assert.Equal(t, -1, i)
}

func TestCollection_CloneIsIndependent(t *testing.T) {
	c := NewCollection(&User{Login: "a"})
	cl := c.Clone()
	cl.Users[0].Login = "b"
	cl.Append(&User{Login: "c"})

	assert.Equal(t, "a", c.Users[0].Login)
	assert.Equal(t, 1, c.Len())
}
