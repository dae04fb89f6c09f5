package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CbIpok/energos/internal/api/handler/v1/request"
	"github.com/CbIpok/energos/internal/api/session"
	"github.com/CbIpok/energos/internal/domain"
	"github.com/CbIpok/energos/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (domain.Admin, error)
	ChangePassword(ctx context.Context, username, current, next string) error
}

type CodeService interface {
	Issue(ctx context.Context, username, drink string) (domain.Code, error)
	Redeem(ctx context.Context, token string) (domain.Code, error)
	ListCodes(ctx context.Context) ([]domain.Code, error)
}

type AdminHandler struct {
	svc   AuthService
	codes CodeService
}

func NewAdminHandler(svc AuthService, codes CodeService) *AdminHandler {
	return &AdminHandler{
		svc:   svc,
		codes: codes,
	}
}

func (h *AdminHandler) HandleLoginPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", gin.H{
		"flashes": session.Flashes(ctx),
	})
}

func (h *AdminHandler) HandleLogin(ctx *gin.Context) {
	var req request.AdminLoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		flashAndRedirect(ctx, "danger", "Неверные данные", "/admin/login")

		return
	}

	if err := req.Validate(); err != nil {
		flashAndRedirect(ctx, "danger", "Неверные данные", "/admin/login")

		return
	}

	admin, err := h.svc.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		// Unknown user and wrong password get the same message so the
		// form can't be used to enumerate accounts.
		if errors.Is(err, service.ErrAdminNotFound) || errors.Is(err, service.ErrWrongPassword) {
			flashAndRedirect(ctx, "danger", "Неверные данные", "/admin/login")

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		renderInternalError(ctx, err)

		return
	}

	sess := session.FromGin(ctx)
	sess.AdminLoggedIn = true
	sess.Username = admin.Username
	if err = sess.Save(ctx); err != nil {
		renderInternalError(ctx, fmt.Errorf("v1.HandleLogin -> sess.Save -> %w", err))

		return
	}

	ctx.Redirect(http.StatusFound, "/admin/dashboard")
}

func (h *AdminHandler) HandleLogout(ctx *gin.Context) {
	sess := session.FromGin(ctx)
	sess.AdminLoggedIn = false
	if err := sess.Save(ctx); err != nil {
		renderInternalError(ctx, fmt.Errorf("v1.HandleLogout -> sess.Save -> %w", err))

		return
	}

	ctx.Redirect(http.StatusFound, "/admin/login")
}

func (h *AdminHandler) HandleDashboard(ctx *gin.Context) {
	codes, err := h.codes.ListCodes(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleDashboard -> h.codes.ListCodes -> %w", err)
		renderInternalError(ctx, err)

		return
	}

	ctx.HTML(http.StatusOK, "dashboard.html", gin.H{
		"codes":   codes,
		"flashes": session.Flashes(ctx),
	})
}

func (h *AdminHandler) HandleGenerateCode(ctx *gin.Context) {
	var req request.GenerateCodeRequest
	if err := ctx.ShouldBind(&req); err != nil {
		flashAndRedirect(ctx, "danger", "Заполните все поля формы", "/admin/dashboard")

		return
	}

	if err := req.Validate(); err != nil {
		flashAndRedirect(ctx, "danger", "Заполните все поля формы", "/admin/dashboard")

		return
	}

	code, err := h.codes.Issue(ctx.Request.Context(), req.Username, req.Drink)
	if err != nil {
		err = fmt.Errorf("v1.HandleGenerateCode -> h.codes.Issue -> %w", err)
		renderInternalError(ctx, err)

		return
	}

	flashAndRedirect(ctx, "success", fmt.Sprintf("Сгенерирован код: %v", code.Code), "/admin/dashboard")
}

func (h *AdminHandler) HandleChangePassword(ctx *gin.Context) {
	var req request.ChangePasswordRequest
	if err := ctx.ShouldBind(&req); err != nil {
		flashAndRedirect(ctx, "danger", "Заполните все поля формы", "/admin/dashboard")

		return
	}

	if err := req.Validate(); err != nil {
		flashAndRedirect(ctx, "danger", err.Error(), "/admin/dashboard")

		return
	}

	sess := session.FromGin(ctx)

	err := h.svc.ChangePassword(ctx.Request.Context(), sess.Username, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrWrongPassword) || errors.Is(err, service.ErrAdminNotFound) {
			flashAndRedirect(ctx, "danger", "Текущий пароль указан неверно", "/admin/dashboard")

			return
		}

		err = fmt.Errorf("v1.HandleChangePassword -> h.svc.ChangePassword -> %w", err)
		renderInternalError(ctx, err)

		return
	}

	flashAndRedirect(ctx, "success", "Пароль обновлён", "/admin/dashboard")
}

func flashAndRedirect(ctx *gin.Context, level, text, location string) {
	if err := session.AddFlash(ctx, level, text); err != nil {
		zap.L().Warn("failed to save flash message", zap.Error(err))
	}

	ctx.Redirect(http.StatusFound, location)
}

func renderInternalError(ctx *gin.Context, err error) {
	zap.L().Error("internal error", zap.Error(err))
	ctx.String(http.StatusInternalServerError, "Internal Server Error")
}
