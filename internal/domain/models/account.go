package models

import "time"

// Screen names in canonical (lower-case) form.
const (
	ScreenDashboard = "dashboard"
	ScreenInventory = "inventory"
	ScreenHistory   = "history"
	ScreenSettings  = "settings"
)

// AllScreens lists every screen the application serves, in navigation order.
var AllScreens = []string{ScreenDashboard, ScreenInventory, ScreenHistory, ScreenSettings}

// MasterAdminRowIndex is the backing-store row of the unremovable first
// account.
const MasterAdminRowIndex = 2

// Account is one login identity from the login sheet. The backing store
// keeps credentials in plaintext; this service compares them as-is.
type Account struct {
	RowIndex    int      `json:"rowIndex"`
	SerialNo    string   `json:"serialNo"`
	DisplayName string   `json:"userName"`
	LoginID     string   `json:"userId"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	PageAccess  []string `json:"pageAccess"`
}

// Session is an authenticated identity plus its navigation state, keyed by
// an opaque bearer token.
type Session struct {
	Token        string    `bson:"_id" json:"token"`
	Account      Account   `bson:"account" json:"user"`
	ActiveScreen string    `bson:"active_screen" json:"activeScreen"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}
