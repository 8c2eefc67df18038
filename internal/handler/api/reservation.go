package api

import (
	"log/slog"
	"net/http"
	"time"

	reqdto "reservebook/internal/handler/dto/request"
	resdto "reservebook/internal/handler/dto/response"
	"reservebook/internal/handler/httperr"
	"reservebook/internal/handler/view"
	"reservebook/internal/pkg/config"
	"reservebook/internal/pkg/cookie"
	"reservebook/internal/pkg/errs"
	"reservebook/internal/pkg/notice"
	"reservebook/internal/usecase/commands"
	"reservebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Messages shown to the person booking.
const (
	MsgCreated      = "予約を作成しました。"
	MsgCreateFailed = "予約の作成に失敗しました。入力内容を確認してください。"
	MsgInvalidSlot  = "終了時刻は開始時刻より後である必要があります。"
	MsgConflict     = "その時間帯はすでに予約があります。別の時間を選んでください。"
	MsgDeleted      = "予約を削除しました。"
	MsgNotFound     = "予約が見つかりません。"
	MsgDeleteFailed = "予約の削除に失敗しました。"
)

const (
	bookingPagePath     = "/"
	failedToLoadError   = "Failed to load reservations"
	failedToFindError   = "Failed to load reservation"
	reservationNotFound = "Reservation not found"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
	codec    *notice.Codec
	cookie   config.CookieConfig
	loc      *time.Location
	logger   *slog.Logger
}

func NewReservationHandler(
	cmds commands.ReservationCommands,
	qs queries.ReservationQueries,
	codec *notice.Codec,
	cfg config.Config,
	loc *time.Location,
	logger *slog.Logger,
) *ReservationHandler {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReservationHandler{
		commands: cmds,
		queries:  qs,
		codec:    codec,
		cookie:   cfg.Cookie,
		loc:      loc,
		logger:   logger,
	}
}

// @Summary Booking page
// @Description Booking form with a calendar of existing reservations
// @Tags pages
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router / [get]
func (h *ReservationHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, view.IndexTemplate, view.IndexPage{
		Notice:   h.popNotice(c),
		TimeZone: h.loc.String(),
	})
}

// @Summary Calendar feed
// @Description Reservations as calendar events, optionally limited to [start, end)
// @Tags reservations
// @Produce json
// @Param start query string false "Window start (RFC 3339 or YYYY-MM-DD)"
// @Param end query string false "Window end (RFC 3339 or YYYY-MM-DD)"
// @Success 200 {array} resdto.EventResponse
// @Failure 500 {object} httperr.Response
// @Router /events [get]
func (h *ReservationHandler) Events(c *gin.Context) {
	var req reqdto.EventsRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Debug("ignoring calendar window", "error", err)
	}
	from, to := req.Bounds(h.loc)

	views, err := h.queries.ListInRange(c.Request.Context(), queries.Range{From: from, To: to})
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, failedToLoadError, nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationViewsToEvents(views))
}

// @Summary Reservation list page
// @Description All reservations ordered by start time, each with a delete button
// @Tags pages
// @Produce html
// @Success 200 {string} string "HTML page"
// @Failure 500 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	views, err := h.queries.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, failedToLoadError, nil)
		return
	}

	c.HTML(http.StatusOK, view.ListTemplate, view.ListPage{
		Notice:       h.popNotice(c),
		TimeZone:     h.loc.String(),
		Reservations: views,
	})
}

// @Summary Get reservation
// @Description A single reservation by id
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, reservationNotFound, nil)
		return
	}

	v, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, errs.ErrReservationNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, reservationNotFound, nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, failedToFindError, nil)
		return
	}

	res, err := resdto.FromReservationView(v)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, failedToFindError, nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Create reservation
// @Description Books [start, end) for a user. Browsers are redirected to / with a notice cookie;
// @Description clients sending Accept: application/json receive the status payload.
// @Tags reservations
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.StatusResponse
// @Success 303 "Redirect to /"
// @Failure 400 {object} resdto.StatusResponse
// @Failure 409 {object} resdto.StatusResponse
// @Failure 500 {object} resdto.StatusResponse
// @Router /reserve [post]
func (h *ReservationHandler) Reserve(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(err)
		h.respond(c, http.StatusBadRequest, notice.Error(MsgCreateFailed), nil)
		return
	}

	in, err := req.ToInput(h.loc)
	if err != nil {
		_ = c.Error(err)
		h.respond(c, http.StatusBadRequest, notice.Error(MsgCreateFailed), nil)
		return
	}

	created, err := h.commands.CreateReservation(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		status, msg := createFailure(err)
		h.respond(c, status, notice.Error(msg), nil)
		return
	}

	res, err := resdto.FromReservationView(created)
	if err != nil {
		h.logger.Warn("failed to build reservation response", "error", err)
	}
	h.respond(c, http.StatusCreated, notice.Success(MsgCreated), res)
}

// @Summary Delete reservation
// @Description Deletes a reservation. Unknown ids yield 404.
// @Tags reservations
// @Produce json,html
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.StatusResponse
// @Success 303 "Redirect to /"
// @Failure 404 {object} resdto.StatusResponse
// @Failure 500 {object} resdto.StatusResponse
// @Router /delete/{id} [post]
func (h *ReservationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	err = h.commands.DeleteReservation(c.Request.Context(), id)
	switch {
	case err == nil:
		h.respond(c, http.StatusOK, notice.Success(MsgDeleted), nil)
	case errs.Is(err, errs.ErrReservationNotFound):
		h.notFound(c)
	default:
		_ = c.Error(err)
		h.respond(c, http.StatusInternalServerError, notice.Error(MsgDeleteFailed), nil)
	}
}

func createFailure(err error) (int, string) {
	switch {
	case errs.Is(err, errs.ErrInvalidTimeSlot):
		return http.StatusBadRequest, MsgInvalidSlot
	case errs.Is(err, errs.ErrDomainValidation):
		return http.StatusBadRequest, MsgCreateFailed
	case errs.Is(err, errs.ErrReservationConflict):
		return http.StatusConflict, MsgConflict
	default:
		return http.StatusInternalServerError, MsgCreateFailed
	}
}

// notFound answers 404 with the booking page rather than a redirect.
func (h *ReservationHandler) notFound(c *gin.Context) {
	n := notice.Error(MsgNotFound)
	if wantsJSON(c) {
		c.JSON(http.StatusNotFound, resdto.FromNotice(n))
		return
	}
	c.HTML(http.StatusNotFound, view.IndexTemplate, view.IndexPage{
		Notice:   &n,
		TimeZone: h.loc.String(),
	})
}

func (h *ReservationHandler) respond(c *gin.Context, status int, n notice.Notice, res *resdto.ReservationResponse) {
	if wantsJSON(c) {
		body := resdto.FromNotice(n)
		body.Reservation = res
		c.JSON(status, body)
		return
	}

	token, err := h.codec.Encode(n)
	if err != nil {
		h.logger.Error("failed to encode notice", "error", err)
	} else {
		cookie.SetNotice(c, h.cookie, token, h.codec.TTL())
	}
	c.Redirect(http.StatusSeeOther, bookingPagePath)
}

// popNotice returns nil for a missing, tampered or expired cookie.
func (h *ReservationHandler) popNotice(c *gin.Context) *notice.Notice {
	token := cookie.PopNotice(c, h.cookie)
	if token == "" {
		return nil
	}
	n, err := h.codec.Decode(token)
	if err != nil {
		h.logger.Debug("discarding notice cookie", "error", err)
		return nil
	}
	return &n
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}
