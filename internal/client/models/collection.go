package models

// Collection is the ordered set of users for one run. The slice order is the
// canonical order; sorting reorders it in place.
type Collection struct {
	Users []*User

	// highID is the largest id seen in this run. Removals leave it in place
	// so a deleted id is never handed out again.
	highID int
}

// NewCollection wraps users into a Collection.
func NewCollection(users ...*User) *Collection {
	if users == nil {
		users = []*User{}
	}
	c := &Collection{Users: users}
	for _, u := range users {
		c.see(u)
	}
	return c
}

func (c *Collection) see(u *User) {
	if u.ID > c.highID {
		c.highID = u.ID
	}
}

func (c *Collection) Len() int {
	return len(c.Users)
}

// NextID returns the id for a new record: len+1 while numbering is
// append-only, and past the highest id seen once deletions left gaps.
func (c *Collection) NextID() int {
	next := max(len(c.Users), c.highID)
	for _, u := range c.Users {
		next = max(next, u.ID)
	}
	return next + 1
}

// FindByLogin returns the user with the given login and its index, or
// (nil, -1) when absent.
func (c *Collection) FindByLogin(login string) (*User, int) {
	for i, u := range c.Users {
		if u.Login == login {
			return u, i
		}
	}
	return nil, -1
}

// Append adds u at the end of the canonical order.
func (c *Collection) Append(u *User) {
	c.Users = append(c.Users, u)
	c.see(u)
}

// RemoveAt deletes the user at index i and returns it.
func (c *Collection) RemoveAt(i int) *User {
	u := c.Users[i]
	c.Users = append(c.Users[:i:i], c.Users[i+1:]...)
	return u
}

// InsertAt puts u back at index i. Used to undo a removal.
func (c *Collection) InsertAt(i int, u *User) {
	c.Users = append(c.Users[:i:i], append([]*User{u}, c.Users[i:]...)...)
	c.see(u)
}

// Clone returns a deep copy of the collection.
func (c *Collection) Clone() *Collection {
	users := make([]*User, len(c.Users))
	for i, u := range c.Users {
		users[i] = u.Clone()
	}
	return &Collection{Users: users, highID: c.highID}
}
