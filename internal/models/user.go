package models

import "time"

// User is a registered mobile device. There is no email/password login;
// devices authenticate with a bearer token and a bcrypt-hashed refresh
// secret issued at registration.
type User struct {
	ID         string
	SecretHash string
	Timezone   string // IANA zone used to derive the user's calendar day
	IsPremium  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AdUnlock is a rewarded-ad unlock for one premium puzzle. Unlocks
// expire; only unexpired rows count toward the valid-unlock set.
type AdUnlock struct {
	ID        string
	UserID    string
	PuzzleID  string
	ExpiresAt time.Time
	CreatedAt time.Time
}
