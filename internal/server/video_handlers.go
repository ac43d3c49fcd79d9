package server

import (
	"artspace/internal/models"
	"artspace/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createVideoRequest struct {
	Title         string `json:"judul" form:"judul"`
	YoutubeLink   string `json:"link_youtube" form:"link_youtube"`
	ThumbnailLink string `json:"link_thumbnail" form:"link_thumbnail"`
	Description   string `json:"deskripsi" form:"deskripsi"`
	CreatedBy     string `json:"dibuat_oleh" form:"dibuat_oleh"`
}

type updateVideoRequest struct {
	Title         *string `json:"judul" form:"judul"`
	YoutubeLink   *string `json:"link_youtube" form:"link_youtube"`
	ThumbnailLink *string `json:"link_thumbnail" form:"link_thumbnail"`
	Description   *string `json:"deskripsi" form:"deskripsi"`
	CreatedBy     *string `json:"dibuat_oleh" form:"dibuat_oleh"`
}

// GetVideos handles GET /api/ruang_video
// @Summary List videos
// @Description All live videos, newest first. liked reflects the caller when authenticated.
// @Tags videos
// @Produce json
// @Success 200 {array} videoResponse
// @Router /ruang_video [get]
func (s *Server) GetVideos(c *fiber.Ctx) error {
	listing, err := s.videoService.List(c.UserContext(), s.optionalUserID(c))
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(s.presentVideoListing(listing))
}

// GetLatestVideos handles GET /api/ruang_video/latest
// @Summary Latest videos
// @Tags videos
// @Produce json
// @Param limit query int false "Max results" default(10)
// @Success 200 {array} videoResponse
// @Router /ruang_video/latest [get]
func (s *Server) GetLatestVideos(c *fiber.Ctx) error {
	page := parsePagination(c, 10)
	listing, err := s.videoService.Latest(c.UserContext(), page.Limit, s.optionalUserID(c))
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(s.presentVideoListing(listing))
}

// GetVideosByOwner handles GET /api/ruang_video/by-user?owner=<username>
// @Summary Videos by artist
// @Tags videos
// @Produce json
// @Param owner query string true "Username"
// @Success 200 {array} videoResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /ruang_video/by-user [get]
func (s *Server) GetVideosByOwner(c *fiber.Ctx) error {
	listing, err := s.videoService.ListByOwnerUsername(c.UserContext(), c.Query("owner"), s.optionalUserID(c))
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(s.presentVideoListing(listing))
}

// GetMyVideos handles GET /api/ruang_video/me
// @Summary My videos
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} videoResponse
// @Router /ruang_video/me [get]
func (s *Server) GetMyVideos(c *fiber.Ctx) error {
	listing, err := s.videoService.ListMine(c.UserContext(), userID(c))
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(s.presentVideoListing(listing))
}

// GetVideo handles GET /api/ruang_video/:id
// @Summary Get video
// @Tags videos
// @Produce json
// @Param id path int true "Video ID"
// @Success 200 {object} videoResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /ruang_video/{id} [get]
func (s *Server) GetVideo(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	video, liked, err := s.videoService.Get(c.UserContext(), id, s.optionalUserID(c))
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(s.presentVideo(video, liked))
}

// CreateVideo handles POST /api/ruang_video
// @Summary Create video
// @Description The thumbnail may be a link or an uploaded file
// @Tags videos
// @Accept json,multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param request body createVideoRequest true "Video"
// @Success 201 {object} object{message=string,ruang_video=videoResponse}
// @Failure 400 {object} models.ErrorResponse
// @Router /ruang_video [post]
func (s *Server) CreateVideo(c *fiber.Ctx) error {
	var req createVideoRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	video, err := s.videoService.Create(c.UserContext(), service.CreateVideoInput{
		UserID:        userID(c),
		Title:         req.Title,
		YoutubeLink:   req.YoutubeLink,
		ThumbnailLink: req.ThumbnailLink,
		Thumbnail:     formUpload(c, "link_thumbnail"),
		Description:   req.Description,
		CreatedBy:     req.CreatedBy,
	})
	if err != nil {
		return models.Respond(c, err)
	}

	if loaded, _, err := s.videoService.Get(c.UserContext(), video.ID, video.UserID); err == nil {
		video = loaded
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Video created",
		"ruang_video": s.presentVideo(video, false),
	})
}

// UpdateVideo handles PUT /api/ruang_video/:id
// @Summary Update video
// @Description Partial update by the owner
// @Tags videos
// @Accept json,multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Param request body updateVideoRequest false "Fields to change"
// @Success 200 {object} object{message=string,ruang_video=videoResponse}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /ruang_video/{id} [put]
func (s *Server) UpdateVideo(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req updateVideoRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	video, err := s.videoService.Update(c.UserContext(), service.UpdateVideoInput{
		UserID:        userID(c),
		VideoID:       id,
		Title:         req.Title,
		YoutubeLink:   req.YoutubeLink,
		ThumbnailLink: req.ThumbnailLink,
		Thumbnail:     formUpload(c, "link_thumbnail"),
		Description:   req.Description,
		CreatedBy:     req.CreatedBy,
	})
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"message":     "Video updated",
		"ruang_video": s.presentVideo(video, false),
	})
}

// DeleteVideo handles DELETE /api/ruang_video/:id
// @Summary Delete video
// @Description Soft delete by the owner. Likes are kept.
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /ruang_video/{id} [delete]
func (s *Server) DeleteVideo(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.videoService.Delete(c.UserContext(), userID(c), id); err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Video deleted"})
}

// ToggleVideoLike handles POST /api/ruang_video/:id/like
// @Summary Toggle video like
// @Description Likes the video, or removes the caller's like if present
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Success 200 {object} models.LikeState
// @Failure 404 {object} models.ErrorResponse
// @Router /ruang_video/{id}/like [post]
func (s *Server) ToggleVideoLike(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	state, err := s.videoService.ToggleLike(c.UserContext(), userID(c), id)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(state)
}
