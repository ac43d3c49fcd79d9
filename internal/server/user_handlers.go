package server

import (
	"artspace/internal/models"
	"artspace/internal/service"

	"github.com/gofiber/fiber/v2"
)

type updateProfileRequest struct {
	Username *string `json:"username" form:"username"`
	FullName *string `json:"nama_lengkap" form:"nama_lengkap"`
	Bio      *string `json:"bio" form:"bio"`
	Location *string `json:"lokasi" form:"lokasi"`
}

// GetAllUsers handles GET /api/users
// @Summary List users
// @Tags users
// @Produce json
// @Param limit query int false "Max results" default(50)
// @Param offset query int false "Offset"
// @Success 200 {array} userResponse
// @Router /users [get]
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 50)
	users, err := s.userService.ListUsers(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return models.Respond(c, err)
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, s.presentUser(&users[i], false))
	}
	return c.JSON(out)
}

// GetMyProfile handles GET /api/users/me
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} userResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.UserContext(), userID(c))
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(s.presentUser(user, true))
}

// UpdateUser handles PUT /api/users/:id
// @Summary Update profile
// @Description Partial profile update. Only the account owner may edit it.
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param foto_profil formData file false "Profile picture (png, jpg, jpeg)"
// @Success 200 {object} object{message=string,user=userResponse}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/{id} [put]
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req updateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:   userID(c),
		TargetID: id,
		Username: req.Username,
		FullName: req.FullName,
		Bio:      req.Bio,
		Location: req.Location,
		Avatar:   formUpload(c, "foto_profil"),
	})
	if err != nil {
		return models.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"user":    s.presentUser(user, true),
	})
}

// DeleteMyAccount handles DELETE /api/users/me
// @Summary Delete account
// @Description Soft deletes the caller. Existing tokens stop working immediately.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Router /users/me [delete]
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.userService.DeleteAccount(c.UserContext(), userID(c)); err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account deleted"})
}

// GetArtistDetail handles GET /api/users/:id/detail
// @Summary Artist profile
// @Description Public profile with the artist's artworks and videos
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} artistDetailResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/detail [get]
func (s *Server) GetArtistDetail(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	detail, err := s.userService.GetArtistDetail(c.UserContext(), id)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(s.presentArtistDetail(detail))
}
