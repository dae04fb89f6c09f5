package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CbIpok/energos/internal/api/handler/v1/request"
	"github.com/CbIpok/energos/internal/api/session"
	"github.com/CbIpok/energos/internal/domain"
	"github.com/CbIpok/energos/internal/service"
)

type ReviewService interface {
	Submit(ctx context.Context, codeToken, username, drink, text string) (domain.Review, error)
	Like(ctx context.Context, codeToken, username string, likesUsed int, reviewID uint) error
	ListRated(ctx context.Context) ([]domain.RatedReview, error)
}

type ReviewHandler struct {
	svc   ReviewService
	codes CodeService
}

func NewReviewHandler(svc ReviewService, codes CodeService) *ReviewHandler {
	return &ReviewHandler{
		svc:   svc,
		codes: codes,
	}
}

func (h *ReviewHandler) HandleIndex(ctx *gin.Context) {
	reviews, err := h.svc.ListRated(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleIndex -> h.svc.ListRated -> %w", err)
		renderInternalError(ctx, err)

		return
	}

	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"reviews": reviews,
		"flashes": session.Flashes(ctx),
	})
}

// HandleRedeem exchanges a valid unused code for a session identity. The code
// itself stays unused until the review is submitted.
func (h *ReviewHandler) HandleRedeem(ctx *gin.Context) {
	var req request.RedeemCodeRequest
	if err := ctx.ShouldBind(&req); err != nil {
		flashAndRedirect(ctx, "danger", "Неверный или уже использованный код", "/")

		return
	}

	if err := req.Validate(); err != nil {
		flashAndRedirect(ctx, "danger", "Неверный или уже использованный код", "/")

		return
	}

	code, err := h.codes.Redeem(ctx.Request.Context(), req.Code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCode) {
			flashAndRedirect(ctx, "danger", "Неверный или уже использованный код", "/")

			return
		}

		err = fmt.Errorf("v1.HandleRedeem -> h.codes.Redeem -> %w", err)
		renderInternalError(ctx, err)

		return
	}

	sess := session.FromGin(ctx)
	sess.Code = code.Code
	sess.Username = code.Username
	sess.Drink = code.Drink
	sess.LikesUsed = 0
	if err = sess.Save(ctx); err != nil {
		renderInternalError(ctx, fmt.Errorf("v1.HandleRedeem -> sess.Save -> %w", err))

		return
	}

	ctx.Redirect(http.StatusFound, "/submit_review")
}

func (h *ReviewHandler) HandleSubmitReviewPage(ctx *gin.Context) {
	sess := session.FromGin(ctx)
	if !sess.HasCode() {
		ctx.Redirect(http.StatusFound, "/")

		return
	}

	ctx.HTML(http.StatusOK, "submit_review.html", gin.H{
		"username": sess.Username,
		"drink":    sess.Drink,
		"flashes":  session.Flashes(ctx),
	})
}

func (h *ReviewHandler) HandleSubmitReview(ctx *gin.Context) {
	sess := session.FromGin(ctx)
	if !sess.HasCode() {
		ctx.Redirect(http.StatusFound, "/")

		return
	}

	var req request.SubmitReviewRequest
	if err := ctx.ShouldBind(&req); err != nil {
		flashAndRedirect(ctx, "danger", "Текст отзыва не может быть пустым", "/submit_review")

		return
	}

	if err := req.Validate(); err != nil {
		flashAndRedirect(ctx, "danger", "Текст отзыва не может быть пустым", "/submit_review")

		return
	}

	_, err := h.svc.Submit(ctx.Request.Context(), sess.Code, sess.Username, sess.Drink, req.Text)
	if err != nil {
		// A replayed submit finds the code already used and must not
		// produce a second review.
		if errors.Is(err, service.ErrCodeAlreadyUsed) || errors.Is(err, service.ErrInvalidCode) {
			flashAndRedirect(ctx, "danger", "Неверный или уже использованный код", "/")

			return
		}

		err = fmt.Errorf("v1.HandleSubmitReview -> h.svc.Submit -> %w", err)
		renderInternalError(ctx, err)

		return
	}

	// Identity stays in the session so the reviewer can spend the like the
	// submission just replenished.
	sess.LikesUsed = 0
	if err = sess.Save(ctx); err != nil {
		renderInternalError(ctx, fmt.Errorf("v1.HandleSubmitReview -> sess.Save -> %w", err))

		return
	}

	flashAndRedirect(ctx, "success", "Отзыв успешно отправлен!", "/")
}

func (h *ReviewHandler) HandleLike(ctx *gin.Context) {
	reviewID, err := strconv.ParseUint(ctx.Param("reviewID"), 10, 64)
	if err != nil {
		ctx.String(http.StatusNotFound, "404 Not Found")

		return
	}

	sess := session.FromGin(ctx)
	if !sess.HasCode() {
		flashAndRedirect(ctx, "warning", "Чтобы лайкать, сперва введите код участника", "/")

		return
	}

	err = h.svc.Like(ctx.Request.Context(), sess.Code, sess.Username, sess.LikesUsed, uint(reviewID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			ctx.String(http.StatusNotFound, "404 Not Found")
		case errors.Is(err, service.ErrAlreadyLiked):
			flashAndRedirect(ctx, "warning", "Вы уже лайкали этот отзыв", "/")
		case errors.Is(err, service.ErrLikeQuotaExceeded):
			flashAndRedirect(ctx, "warning", "Вы использовали свой лайк. Чтобы получить новый — оставьте отзыв.", "/")
		case errors.Is(err, service.ErrSelfLike):
			flashAndRedirect(ctx, "warning", "Нельзя лайкать собственный отзыв", "/")
		case errors.Is(err, service.ErrInvalidCode):
			flashAndRedirect(ctx, "warning", "Чтобы лайкать, сперва введите код участника", "/")
		default:
			err = fmt.Errorf("v1.HandleLike -> h.svc.Like -> %w", err)
			renderInternalError(ctx, err)
		}

		return
	}

	sess.LikesUsed++
	if err = sess.Save(ctx); err != nil {
		renderInternalError(ctx, fmt.Errorf("v1.HandleLike -> sess.Save -> %w", err))

		return
	}

	flashAndRedirect(ctx, "success", "Лайк учтён", "/")
}
