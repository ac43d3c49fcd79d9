package server

import (
	"artspace/internal/models"
	"artspace/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createArtworkRequest struct {
	Title        string `json:"judul_karya" form:"judul_karya"`
	Description  string `json:"deskripsi" form:"deskripsi"`
	WhatsAppLink string `json:"link_whatsapp" form:"link_whatsapp"`
}

type updateArtworkRequest struct {
	Title        *string `json:"judul_karya" form:"judul_karya"`
	Description  *string `json:"deskripsi" form:"deskripsi"`
	WhatsAppLink *string `json:"link_whatsapp" form:"link_whatsapp"`
}

// GetArtworks handles GET /api/karya_seni
// @Summary List artworks
// @Description All live artworks, newest first
// @Tags artworks
// @Produce json
// @Success 200 {array} artworkResponse
// @Router /karya_seni [get]
func (s *Server) GetArtworks(c *fiber.Ctx) error {
	artworks, err := s.artworkService.List(c.UserContext())
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(s.presentArtworks(artworks))
}

// GetLatestArtworks handles GET /api/karya_seni/latest
// @Summary Latest artworks
// @Tags artworks
// @Produce json
// @Param limit query int false "Max results" default(10)
// @Success 200 {array} artworkResponse
// @Router /karya_seni/latest [get]
func (s *Server) GetLatestArtworks(c *fiber.Ctx) error {
	page := parsePagination(c, 10)
	artworks, err := s.artworkService.Latest(c.UserContext(), page.Limit)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(s.presentArtworks(artworks))
}

// GetArtworksByOwner handles GET /api/karya_seni/by-user?owner=<username>
// @Summary Artworks by artist
// @Tags artworks
// @Produce json
// @Param owner query string true "Username"
// @Success 200 {array} artworkResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /karya_seni/by-user [get]
func (s *Server) GetArtworksByOwner(c *fiber.Ctx) error {
	artworks, err := s.artworkService.ListByOwnerUsername(c.UserContext(), c.Query("owner"))
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(s.presentArtworks(artworks))
}

// GetMyArtworks handles GET /api/karya_seni/me
// @Summary My artworks
// @Tags artworks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} artworkResponse
// @Router /karya_seni/me [get]
func (s *Server) GetMyArtworks(c *fiber.Ctx) error {
	artworks, err := s.artworkService.ListMine(c.UserContext(), userID(c))
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(s.presentArtworks(artworks))
}

// GetArtwork handles GET /api/karya_seni/:id
// @Summary Get artwork
// @Tags artworks
// @Produce json
// @Param id path int true "Artwork ID"
// @Success 200 {object} artworkResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /karya_seni/{id} [get]
func (s *Server) GetArtwork(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	artwork, err := s.artworkService.Get(c.UserContext(), id, s.optionalUserID(c))
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(s.presentArtwork(artwork))
}

// CreateArtwork handles POST /api/karya_seni
// @Summary Create artwork
// @Tags artworks
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param judul_karya formData string true "Title"
// @Param deskripsi formData string false "Description"
// @Param link_whatsapp formData string false "Contact link"
// @Param link_foto formData file true "Image (png, jpg, jpeg, gif)"
// @Success 201 {object} object{message=string,karya_seni=artworkResponse}
// @Failure 400 {object} models.ErrorResponse
// @Router /karya_seni [post]
func (s *Server) CreateArtwork(c *fiber.Ctx) error {
	var req createArtworkRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	artwork, err := s.artworkService.Create(c.UserContext(), service.CreateArtworkInput{
		UserID:       userID(c),
		Title:        req.Title,
		Description:  req.Description,
		WhatsAppLink: req.WhatsAppLink,
		Image:        formUpload(c, "link_foto"),
	})
	if err != nil {
		return models.Respond(c, err)
	}

	// Reload for the owner attribution.
	if loaded, err := s.artworkService.Get(c.UserContext(), artwork.ID, artwork.UserID); err == nil {
		artwork = loaded
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Artwork created",
		"karya_seni": s.presentArtwork(artwork),
	})
}

// UpdateArtwork handles PUT /api/karya_seni/:id
// @Summary Update artwork
// @Description Partial update by the owner
// @Tags artworks
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Artwork ID"
// @Param link_foto formData file false "Replacement image"
// @Success 200 {object} object{message=string,karya_seni=artworkResponse}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /karya_seni/{id} [put]
func (s *Server) UpdateArtwork(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req updateArtworkRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	artwork, err := s.artworkService.Update(c.UserContext(), service.UpdateArtworkInput{
		UserID:       userID(c),
		ArtworkID:    id,
		Title:        req.Title,
		Description:  req.Description,
		WhatsAppLink: req.WhatsAppLink,
		Image:        formUpload(c, "link_foto"),
	})
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"message":    "Artwork updated",
		"karya_seni": s.presentArtwork(artwork),
	})
}

// DeleteArtwork handles DELETE /api/karya_seni/:id
// @Summary Delete artwork
// @Description Soft delete by the owner
// @Tags artworks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Artwork ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /karya_seni/{id} [delete]
func (s *Server) DeleteArtwork(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.artworkService.Delete(c.UserContext(), userID(c), id); err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Artwork deleted"})
}

// LikeArtwork handles POST /api/karya_seni/:id/like
// @Summary Like artwork
// @Description Increments the counter. Every call counts.
// @Tags artworks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Artwork ID"
// @Success 200 {object} object{message=string,like_count=int}
// @Failure 404 {object} models.ErrorResponse
// @Router /karya_seni/{id}/like [post]
func (s *Server) LikeArtwork(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	count, err := s.artworkService.Like(c.UserContext(), id)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Artwork liked", "like_count": count})
}

// UnlikeArtwork handles POST /api/karya_seni/:id/unlike
// @Summary Unlike artwork
// @Description Decrements the counter, never below zero
// @Tags artworks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Artwork ID"
// @Success 200 {object} object{message=string,like_count=int}
// @Failure 404 {object} models.ErrorResponse
// @Router /karya_seni/{id}/unlike [post]
func (s *Server) UnlikeArtwork(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	count, err := s.artworkService.Unlike(c.UserContext(), id)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Artwork unliked", "like_count": count})
}
