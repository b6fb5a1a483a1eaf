package core

// Profile is the user document stored in the `users` collection.
//
// This is the "identity" record owned by this service. Credentials live in
// the external identity provider and never appear here.
type Profile struct {
	Name         string `json:"name" firestore:"name"`
	Email        string `json:"email" firestore:"email"`
	ProfileImage string `json:"profileImage,omitempty" firestore:"profileImage,omitempty"`
}

// Task is a task document stored under `users/{uid}/Tasks`.
//
// The ID is store-generated and lives on the document reference, not in the
// document body. UserID is denormalized into the body and always matches the
// owning path segment.
type Task struct {
	ID          string   `json:"id" firestore:"-"`
	Name        string   `json:"name" firestore:"name"`
	Description string   `json:"description" firestore:"description"`
	Date        string   `json:"date" firestore:"date"`
	StartTime   string   `json:"startTime" firestore:"startTime"`
	EndTime     string   `json:"endTime" firestore:"endTime"`
	Completed   bool     `json:"completed" firestore:"completed"`
	Favorite    bool     `json:"favorite" firestore:"favorite"`
	Tags        []string `json:"tags" firestore:"tags"`
	UserID      string   `json:"userId" firestore:"userId"`
}

// Account is a credential record used only by the localauth identity
// provider (postgres backend). It is never exposed over HTTP.
type Account struct {
	UID          string
	Email        string
	PasswordHash string
}

// RegisterInput contains the data needed to register a new user
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// RegisterResult contains the new uid and the stored profile
type RegisterResult struct {
	UID     string
	Profile *Profile
}

// LoginInput contains the credentials supplied at login
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Upload carries an image buffer received on profile update.
type Upload struct {
	Data        []byte
	ContentType string
}
