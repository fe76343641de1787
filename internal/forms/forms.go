package forms

import "time"

// Form structs are bound from POST bodies via echo's form binding and
// checked by the shared validator.

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type RegistrationForm struct {
	Username string `form:"username" validate:"required,min=2,max=64"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8"`
}

type EventForm struct {
	Name        string `form:"name" validate:"required,max=140"`
	Description string `form:"description" validate:"required"`
	Location    string `form:"location" validate:"required,max=140"`
	Date        string `form:"date" validate:"required,datetime=2006-01-02"`
	Time        string `form:"time" validate:"required,datetime=15:04"`
}

// StartsAt combines the separate date and time fields into one
// timestamp. Call only after validation has passed.
func (f *EventForm) StartsAt() (time.Time, error) {
	return time.Parse("2006-01-02 15:04", f.Date+" "+f.Time)
}

type EditProfileForm struct {
	Username string `form:"username" validate:"required,min=2,max=64"`
	AboutMe  string `form:"about_me" validate:"max=140"`
}

type PostForm struct {
	Body string `form:"body" validate:"required,max=280"`
}

type ResetPasswordRequestForm struct {
	Email string `form:"email" validate:"required,email"`
}

type ResetPasswordForm struct {
	Password  string `form:"password" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password"`
}
