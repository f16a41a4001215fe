// Package domain defines the persistence models for users, clients, and
// tickets. These types are mapped with GORM and form the core data layer
// of the CRM application.
package domain

import (
	"time"
)

// User represents a staff member (manager or admin) who can be assigned to
// tickets. Users are provisioned out of band; no public endpoint currently
// creates or lists them.
//
// Fields:
//   - ID: auto-increment primary key.
//   - TgID: Telegram user id of the staff member (unique, optional).
//   - Username: display name (optional).
//   - Role: "manager" or "admin"; defaults to "manager".
type User struct {
	ID       uint    `json:"id"       gorm:"primaryKey"`
	TgID     *string `json:"tg_id"    gorm:"type:varchar(64);uniqueIndex"`
	Username *string `json:"username" gorm:"type:varchar(255)"`
	Role     string  `json:"role"     gorm:"type:varchar(32);not null;default:'manager'"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Client represents a customer record. Clients are immutable after creation;
// the only lifecycle event is the insert itself.
//
// Fields:
//   - ID: auto-increment primary key.
//   - TgID: Telegram user id when the client came through the bot (optional).
//   - Name: customer name; required and non-empty.
//   - Phone / City / Source: optional free-text attributes.
//   - CreatedAt: server-assigned timestamp; never accepted from input.
type Client struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	TgID      *string   `json:"tg_id"      gorm:"type:varchar(64);index"`
	Name      string    `json:"name"       gorm:"type:varchar(255);not null"`
	Phone     *string   `json:"phone"      gorm:"type:varchar(64)"`
	City      *string   `json:"city"       gorm:"type:varchar(255)"`
	Source    *string   `json:"source"     gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Client.
func (Client) TableName() string { return "clients" }

// ClientShort is the projection of a client embedded in ticket responses.
// It intentionally omits source and timestamps.
type ClientShort struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
	City  *string `json:"city"`
}

// Short returns the embedded projection of the client.
func (c Client) Short() ClientShort {
	return ClientShort{ID: c.ID, Name: c.Name, Phone: c.Phone, City: c.City}
}

// Ticket represents a support case tied to exactly one client.
//
// Fields:
//   - ID: auto-increment primary key.
//   - ClientID: foreign key to the owning client; its existence is checked
//     explicitly at creation time, not only via the FK constraint.
//   - Type: free-text category (order / question / warranty / job / other).
//   - Status: lifecycle label, one of the Status* constants; defaults to "new".
//   - AssigneeID: optional foreign key to User. Modeled for future scope;
//     no current operation sets or reads it.
//   - LastComment: optional free text describing the latest state.
//   - CreatedAt: server-assigned, immutable.
//   - UpdatedAt: server-assigned, refreshed on every mutation.
//   - Client: FK association, eager-loaded in list responses.
type Ticket struct {
	ID          uint      `json:"id"           gorm:"primaryKey"`
	ClientID    uint      `json:"client_id"    gorm:"not null;index"`
	Type        string    `json:"type"         gorm:"type:varchar(64);not null"`
	Status      string    `json:"status"       gorm:"type:varchar(32);not null;default:'new';index"`
	AssigneeID  *uint     `json:"assignee_id"`
	LastComment *string   `json:"last_comment" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"   gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Client is the owning customer record. Loaded eagerly when listing
	// tickets; serialized as the short projection by the HTTP layer.
	Client   Client `json:"-" gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Assignee *User  `json:"-" gorm:"foreignKey:AssigneeID;references:ID"`
}

// TableName returns the database table name for Ticket.
func (Ticket) TableName() string { return "tickets" }
