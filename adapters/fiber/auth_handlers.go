package fiber

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/lborres/agenda/core"
)

func (a *Adapter) register(c fiber.Ctx) error {
	var in core.RegisterInput
	if err := c.Bind().Body(&in); err != nil {
		return core.Validation("invalid request body")
	}

	result, err := a.auth.Register(c.Context(), in)
	if err != nil {
		return err
	}

	resp := profileEnvelope("User registered", "The user was registered successfully.", result.Profile)
	resp["uid"] = result.UID
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (a *Adapter) login(c fiber.Ctx) error {
	var in core.LoginInput
	if err := c.Bind().Body(&in); err != nil {
		return core.Validation("invalid request body")
	}

	_, profile, err := a.auth.Login(c.Context(), in)
	if err != nil {
		return err
	}

	resp := profileEnvelope("Login successful", "You are now logged in.", profile)
	return c.Status(fiber.StatusOK).JSON(resp)
}

// logout is advisory: the bearer token is invalidated client-side, so this
// endpoint only returns a fixed envelope.
func (a *Adapter) logout(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"title":   "Logout successful",
		"message": "You have been logged out.",
	})
}

// updateProfile accepts either a multipart form (text fields plus an optional
// `image` file) or a plain JSON body of fields to merge into the profile.
func (a *Adapter) updateProfile(c fiber.Ctx) error {
	uid := c.Params("uid")

	updates := map[string]any{}
	var image *core.Upload

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return core.Validation("invalid multipart form")
		}
		for key, values := range form.Value {
			if len(values) > 0 {
				updates[key] = values[0]
			}
		}
		if files := form.File["image"]; len(files) > 0 {
			header := files[0]
			f, err := header.Open()
			if err != nil {
				return core.Validation("unreadable image upload")
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return core.Validation("unreadable image upload")
			}
			image = &core.Upload{Data: data, ContentType: header.Header.Get("Content-Type")}
		}
	} else if len(c.Body()) > 0 {
		if err := c.Bind().Body(&updates); err != nil {
			return core.Validation("invalid request body")
		}
	}

	profile, err := a.auth.UpdateProfile(c.Context(), uid, updates, image)
	if err != nil {
		return err
	}

	resp := profileEnvelope("Profile updated", "The user profile was updated successfully.", profile)
	resp["uid"] = uid
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (a *Adapter) profile(c fiber.Ctx) error {
	uid := c.Params("uid")

	profile, err := a.auth.Profile(c.Context(), uid)
	if err != nil {
		return err
	}

	resp := profileEnvelope("User profile", "The user profile was retrieved successfully.", profile)
	resp["uid"] = uid
	return c.Status(fiber.StatusOK).JSON(resp)
}

// profileEnvelope merges the profile fields into the uniform response
// envelope. profileImage is omitted when unset, matching the stored document.
func profileEnvelope(title, message string, p *core.Profile) fiber.Map {
	resp := fiber.Map{
		"title":   title,
		"message": message,
		"name":    p.Name,
		"email":   p.Email,
	}
	if p.ProfileImage != "" {
		resp["profileImage"] = p.ProfileImage
	}
	return resp
}
