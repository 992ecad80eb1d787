package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"vocalhub-backend/internal/domains/moderation/model"
	"vocalhub-backend/internal/domains/moderation/service"
	profileModel "vocalhub-backend/internal/domains/profile/model"
	"vocalhub-backend/internal/infrastructure/storage"
	"vocalhub-backend/internal/shared/apperror"
	"vocalhub-backend/internal/shared/middleware"
	"vocalhub-backend/internal/shared/response"
	"vocalhub-backend/internal/shared/utils"
)

var (
	errInvalidID        = apperror.Validation("INVALID_ID", "invalid id")
	errInvalidForm      = apperror.Validation("INVALID_FORM", "could not read multipart form")
	errInvalidFieldList = apperror.Validation("INVALID_FIELD", "invalid list field")
)

// Handler serves every moderatable kind through the same endpoints
type Handler struct {
	service        service.ServiceInterface
	maxUploadBytes int64
}

func NewHandler(service service.ServiceInterface, maxUploadBytes int64) *Handler {
	return &Handler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// =====================================================
// PUBLIC
// =====================================================

// Submit - POST /v1/voicebanks | /v1/tutorials (multipart)
func (h *Handler) Submit(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

		form, err := c.MultipartForm()
		if err != nil {
			if isTooLarge(err) {
				response.ErrorResponse(c, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "upload exceeds the size limit")
				return
			}
			log.Debug().Err(err).Str("kind", kind.String()).Msg("invalid multipart submission")
			response.FromError(c, errInvalidForm)
			return
		}

		var req model.SubmitRequest
		switch kind {
		case model.KindVoicebank:
			req, err = voicebankFromForm(form)
		case model.KindTutorial:
			req, err = tutorialFromForm(form)
		default:
			err = model.ErrUnknownKind
		}
		if err != nil {
			response.FromError(c, err)
			return
		}

		id, err := h.service.Submit(c.Request.Context(), middleware.CurrentActor(c), req)
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.Success(c, http.StatusCreated, model.SubmitResponse{
			ID:     id,
			Kind:   kind,
			Status: model.StatusPending,
		})
	}
}

// ListPublic - GET /v1/voicebanks?profile_id= | /v1/tutorials?type=&difficulty=
func (h *Handler) ListPublic(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := publicFilterFromQuery(c)
		if err != nil {
			response.FromError(c, err)
			return
		}

		records, err := h.service.ListPublic(c.Request.Context(), kind, filter)
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.SuccessWithMeta(c, http.StatusOK, records, &response.Meta{Total: len(records)})
	}
}

// Get - GET /v1/voicebanks/:id | /v1/tutorials/:id
func (h *Handler) Get(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.FromError(c, errInvalidID)
			return
		}

		rec, err := h.service.Get(c.Request.Context(), middleware.CurrentActor(c), kind, id)
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.Success(c, http.StatusOK, rec)
	}
}

// ListBySubmitter - GET /v1/users/:id/voicebanks | /v1/users/:id/tutorials
func (h *Handler) ListBySubmitter(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		submitterID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.FromError(c, errInvalidID)
			return
		}

		records, err := h.service.ListBySubmitter(c.Request.Context(), middleware.CurrentActor(c), kind, submitterID)
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.SuccessWithMeta(c, http.StatusOK, records, &response.Meta{Total: len(records)})
	}
}

// =====================================================
// ADMIN
// =====================================================

// AdminList - GET /v1/admin/moderation/:kind?status=
func (h *Handler) AdminList(c *gin.Context) {
	kind, err := model.ParseKind(c.Param("kind"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	status, err := model.ParseStatus(c.Query("status"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	records, err := h.service.ListAll(c.Request.Context(), middleware.CurrentActor(c), kind, status)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, records, &response.Meta{Total: len(records)})
}

// Stats - GET /v1/admin/moderation/stats
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// Approve - POST /v1/admin/moderation/:kind/:id/approve
func (h *Handler) Approve(c *gin.Context) {
	h.decide(c, model.StatusApproved)
}

// Reject - POST /v1/admin/moderation/:kind/:id/reject
func (h *Handler) Reject(c *gin.Context) {
	h.decide(c, model.StatusRejected)
}

func (h *Handler) decide(c *gin.Context, status model.Status) {
	kind, err := model.ParseKind(c.Param("kind"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.FromError(c, errInvalidID)
		return
	}

	actor := middleware.CurrentActor(c)
	if status == model.StatusApproved {
		err = h.service.Approve(c.Request.Context(), actor, kind, id)
	} else {
		err = h.service.Reject(c.Request.Context(), actor, kind, id)
	}
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.SubmitResponse{ID: id, Kind: kind, Status: status})
}

// =====================================================
// FORM PARSING
// =====================================================

func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func formFile(form *multipart.Form, key string) *storage.File {
	if files := form.File[key]; len(files) > 0 {
		return storage.FileFromHeader(files[0])
	}
	return nil
}

func formList(form *multipart.Form, key string) ([]string, error) {
	list, err := utils.ParseStringList(form.Value[key])
	if err != nil {
		return nil, errInvalidFieldList.WithDetails(map[string]string{key: "must be a JSON array or repeated field"})
	}
	return list, nil
}

func voicebankFromForm(form *multipart.Form) (*model.VoicebankSubmission, error) {
	engines, err := formList(form, "engines")
	if err != nil {
		return nil, err
	}
	languages, err := formList(form, "languages")
	if err != nil {
		return nil, err
	}

	req := &model.VoicebankSubmission{
		Name:          formValue(form, "name"),
		Gender:        profileModel.ParseGender(formValue(form, "gender")),
		Engines:       engines,
		Languages:     languages,
		VoiceProvider: formValue(form, "voiceprovider"),
		Description:   formValue(form, "description"),
		NewProfile:    utils.ParseFormBool(formValue(form, "isNewVocaloid")),
		VoicebankFile: formFile(form, "voicebankFile"),
		SampleFile:    formFile(form, "sampleFile"),
		AvatarFile:    formFile(form, "avatarFile"),
		ImageFile:     formFile(form, "imageFile"),
	}

	if !req.NewProfile {
		req.ProfileID, err = utils.ParseOptionalUUID(formValue(form, "vocaloidId"))
		if err != nil {
			return nil, errInvalidID.WithDetails(map[string]string{"vocaloidId": "must be a uuid"})
		}
	}

	return req, nil
}

func tutorialFromForm(form *multipart.Form) (*model.TutorialSubmission, error) {
	engines, err := formList(form, "engineType")
	if err != nil {
		return nil, err
	}

	return &model.TutorialSubmission{
		Title:        formValue(form, "title"),
		Description:  formValue(form, "description"),
		Type:         model.TutorialType(formValue(form, "type")),
		Difficulty:   model.Difficulty(formValue(form, "difficulty")),
		Engines:      engines,
		TutorialFile: formFile(form, "tutorialFile"),
	}, nil
}

func publicFilterFromQuery(c *gin.Context) (model.PublicFilter, error) {
	var filter model.PublicFilter

	profileID, err := utils.ParseOptionalUUID(c.Query("profile_id"))
	if err != nil {
		return filter, errInvalidID.WithDetails(map[string]string{"profile_id": "must be a uuid"})
	}
	filter.ProfileID = profileID

	if t := c.Query("type"); t != "" {
		tt := model.TutorialType(t)
		if !tt.Valid() {
			return filter, apperror.Validation("INVALID_FILTER", "unknown tutorial type")
		}
		filter.TutorialType = &tt
	}

	if d := c.Query("difficulty"); d != "" {
		dd := model.Difficulty(d)
		if !dd.Valid() {
			return filter, apperror.Validation("INVALID_FILTER", "unknown difficulty")
		}
		filter.Difficulty = &dd
	}

	return filter, nil
}

// isTooLarge reports a body cut off by MaxBytesReader
func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
