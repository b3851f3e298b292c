package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/rook-computer/adcanvas/internal/assets"
	"github.com/rook-computer/adcanvas/internal/compose"
	"github.com/rook-computer/adcanvas/internal/render"
	"github.com/rook-computer/adcanvas/internal/state"
)

// MaxPhotoBytes bounds POST /photo bodies.
const MaxPhotoBytes = 20 << 20

const defaultQRSize = 256

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type textRequest struct {
	Text string `json:"text"`
}

type colorRequest struct {
	Color string `json:"color"`
}

type colorsResponse struct {
	Colors []string `json:"colors"`
}

type photoInfo struct {
	Token  uint64 `json:"token"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type paramsResponse struct {
	Caption         string                  `json:"caption"`
	CTA             string                  `json:"cta"`
	BackgroundColor string                  `json:"backgroundColor"`
	Corrections     state.CorrectionFactors `json:"corrections"`
	Photo           *photoInfo              `json:"photo,omitempty"`
}

type photoAccepted struct {
	Token uint64 `json:"token"`
}

func newParamsResponse(p state.RenderParameters) paramsResponse {
	resp := paramsResponse{
		Caption:         p.CaptionText,
		CTA:             p.CTAText,
		BackgroundColor: p.BackgroundColor,
		Corrections:     p.Corrections,
	}
	if p.HasPhoto() {
		resp.Photo = &photoInfo{Token: p.PhotoToken, Width: p.Photo.Width, Height: p.Photo.Height}
	}
	return resp
}

type apiV1 struct {
	deps      APIV1Deps
	publicURL string
}

// registerAPIV1 adds the editor routes to g.
func registerAPIV1(g *gin.RouterGroup, deps APIV1Deps, publicURL string) {
	api := &apiV1{deps: deps.withDefaults(), publicURL: publicURL}

	g.GET("/params", api.getParams)
	g.PUT("/caption", api.putCaption)
	g.PUT("/cta", api.putCTA)
	g.PUT("/color", api.putColor)
	g.GET("/colors", api.getColors)
	g.PUT("/corrections", api.putCorrections)
	g.POST("/corrections/reset", api.resetCorrections)
	g.POST("/photo", api.postPhoto)
	g.DELETE("/photo", api.deletePhoto)
	g.GET("/frame.png", api.getFrame)
	g.GET("/status", api.getStatus)
	g.GET("/qr", api.getQR)
}

func (api *apiV1) getParams(c *gin.Context) {
	c.JSON(http.StatusOK, newParamsResponse(api.deps.Store.Snapshot()))
}

func (api *apiV1) putCaption(c *gin.Context) {
	var req textRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, newParamsResponse(api.deps.Store.SetCaption(req.Text)))
}

func (api *apiV1) putCTA(c *gin.Context) {
	var req textRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, newParamsResponse(api.deps.Store.SetCTA(req.Text)))
}

func (api *apiV1) putColor(c *gin.Context) {
	var req colorRequest
	if !bindJSON(c, &req) {
		return
	}
	params, err := api.deps.Store.SetBackgroundColor(req.Color)
	if errors.Is(err, render.ErrInvalidColor) {
		writeAPIError(c, http.StatusBadRequest, "invalid_color", err.Error())
		return
	}
	if err != nil {
		writeAPIError(c, http.StatusInternalServerError, "color_failed", err.Error())
		return
	}
	// swatch picks pass record=false so the history keeps its order
	if c.DefaultQuery("record", "true") != "false" {
		if _, err := api.deps.Colors.Push(params.BackgroundColor); err != nil {
			// the canvas already uses the color; only the history is stale
			api.deps.Logger.Errorf("web", "record color %s: %v", params.BackgroundColor, err)
		}
	}
	c.JSON(http.StatusOK, newParamsResponse(params))
}

func (api *apiV1) getColors(c *gin.Context) {
	colors := api.deps.Colors.Colors()
	if colors == nil {
		colors = []string{}
	}
	c.JSON(http.StatusOK, colorsResponse{Colors: colors})
}

func (api *apiV1) putCorrections(c *gin.Context) {
	var patch state.CorrectionsPatch
	if !bindJSON(c, &patch) {
		return
	}
	c.JSON(http.StatusOK, api.deps.Store.PatchCorrections(patch).Corrections)
}

func (api *apiV1) resetCorrections(c *gin.Context) {
	c.JSON(http.StatusOK, api.deps.Store.ResetCorrections().Corrections)
}

func (api *apiV1) postPhoto(c *gin.Context) {
	if c.Request.ContentLength > MaxPhotoBytes {
		writeAPIError(c, http.StatusRequestEntityTooLarge, "too_large", "photo exceeds "+strconv.Itoa(MaxPhotoBytes)+" bytes")
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxPhotoBytes))
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeAPIError(c, http.StatusRequestEntityTooLarge, "too_large", "photo exceeds "+strconv.Itoa(MaxPhotoBytes)+" bytes")
		return
	}
	if err != nil {
		writeAPIError(c, http.StatusBadRequest, "read_failed", err.Error())
		return
	}
	if len(data) == 0 {
		writeAPIError(c, http.StatusBadRequest, "empty_body", "photo body is empty")
		return
	}
	if !filetype.IsImage(data) {
		writeAPIError(c, http.StatusUnsupportedMediaType, "not_image", "body is not a supported image")
		return
	}
	if err := assets.CheckDimensions(data, assets.DefaultMaxPixels); err != nil {
		if errors.Is(err, assets.ErrImageTooLarge) {
			writeAPIError(c, http.StatusRequestEntityTooLarge, "too_many_pixels", err.Error())
		} else {
			writeAPIError(c, http.StatusUnsupportedMediaType, "not_image", err.Error())
		}
		return
	}

	// Decoding outlives the request.
	token := api.deps.Compositor.RequestPhoto(context.WithoutCancel(c.Request.Context()), data)
	api.deps.Logger.Infof("web", "photo request %d accepted (%d bytes)", token, len(data))
	c.JSON(http.StatusAccepted, photoAccepted{Token: token})
}

func (api *apiV1) deletePhoto(c *gin.Context) {
	api.deps.Compositor.ClearPhoto()
	c.JSON(http.StatusOK, okResponse{OK: true})
}

func (api *apiV1) getFrame(c *gin.Context) {
	data, err := api.deps.Compositor.PNG()
	if errors.Is(err, compose.ErrMaskNotLoaded) {
		writeAPIError(c, http.StatusServiceUnavailable, "not_ready", "canvas has not rendered yet")
		return
	}
	if err != nil {
		writeAPIError(c, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", data)
}

func (api *apiV1) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, api.deps.Compositor.Status())
}

func (api *apiV1) getQR(c *gin.Context) {
	size := defaultQRSize
	if raw := c.Query("size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > 2048 {
			writeAPIError(c, http.StatusBadRequest, "invalid_size", "size must be between 1 and 2048")
			return
		}
		size = v
	}

	target := api.publicURL
	if target == "" {
		target = "http://" + c.Request.Host + "/"
	}
	png, err := render.GenerateQRCodePNG(target, size)
	if err != nil {
		writeAPIError(c, http.StatusInternalServerError, "qr_failed", err.Error())
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		writeAPIError(c, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func writeAPIError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, apiError{Error: code, Message: message})
}
