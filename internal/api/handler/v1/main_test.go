package v1_test

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	v1 "github.com/CbIpok/energos/internal/api/handler/v1"
	"github.com/CbIpok/energos/internal/api/middleware"
	"github.com/CbIpok/energos/internal/domain"
)

const testTemplates = `
{{define "index.html"}}index{{end}}
{{define "login.html"}}login{{end}}
{{define "dashboard.html"}}dashboard{{end}}
{{define "submit_review.html"}}submit {{.username}} {{.drink}}{{end}}
`

type fakeAuthService struct {
	admin     domain.Admin
	loginErr  error
	changeErr error
}

func (f *fakeAuthService) Login(_ context.Context, _, _ string) (domain.Admin, error) {
	if f.loginErr != nil {
		return domain.Admin{}, f.loginErr
	}

	return f.admin, nil
}

func (f *fakeAuthService) ChangePassword(_ context.Context, _, _, _ string) error {
	return f.changeErr
}

type fakeCodeService struct {
	issued       []domain.Code
	issueErr     error
	redeemResult domain.Code
	redeemErr    error
	codes        []domain.Code
}

func (f *fakeCodeService) Issue(_ context.Context, username, drink string) (domain.Code, error) {
	if f.issueErr != nil {
		return domain.Code{}, f.issueErr
	}

	code := domain.Code{ID: uint(len(f.issued) + 1), Code: "deadbeef", Username: username, Drink: drink}
	f.issued = append(f.issued, code)

	return code, nil
}

func (f *fakeCodeService) Redeem(_ context.Context, _ string) (domain.Code, error) {
	if f.redeemErr != nil {
		return domain.Code{}, f.redeemErr
	}

	return f.redeemResult, nil
}

func (f *fakeCodeService) ListCodes(_ context.Context) ([]domain.Code, error) {
	return f.codes, nil
}

type submitCall struct {
	codeToken, username, drink, text string
}

type likeCall struct {
	codeToken, username string
	likesUsed           int
	reviewID            uint
}

type fakeReviewService struct {
	submitted []submitCall
	submitErr error
	likes     []likeCall
	likeErr   error
	rated     []domain.RatedReview
}

func (f *fakeReviewService) Submit(_ context.Context, codeToken, username, drink, text string) (domain.Review, error) {
	if f.submitErr != nil {
		return domain.Review{}, f.submitErr
	}

	f.submitted = append(f.submitted, submitCall{codeToken, username, drink, text})

	return domain.Review{ID: uint(len(f.submitted)), Username: username, Drink: drink, Text: text}, nil
}

func (f *fakeReviewService) Like(_ context.Context, codeToken, username string, likesUsed int, reviewID uint) error {
	f.likes = append(f.likes, likeCall{codeToken, username, likesUsed, reviewID})

	return f.likeErr
}

func (f *fakeReviewService) ListRated(_ context.Context) ([]domain.RatedReview, error) {
	return f.rated, nil
}

func newTestRouter(t *testing.T, authSvc v1.AuthService, codeSvc v1.CodeService, reviewSvc v1.ReviewService) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.SetHTMLTemplate(template.Must(template.New("test").Parse(testTemplates)))

	store := cookie.NewStore([]byte("test-secret"))
	engine.Use(sessions.Sessions("energos_session", store))

	adminHandler := v1.NewAdminHandler(authSvc, codeSvc)
	reviewHandler := v1.NewReviewHandler(reviewSvc, codeSvc)

	engine.GET("/", reviewHandler.HandleIndex)
	engine.POST("/", reviewHandler.HandleRedeem)
	engine.GET("/submit_review", reviewHandler.HandleSubmitReviewPage)
	engine.POST("/submit_review", reviewHandler.HandleSubmitReview)
	engine.POST("/like/:reviewID", reviewHandler.HandleLike)

	engine.GET("/admin/login", adminHandler.HandleLoginPage)
	engine.POST("/admin/login", adminHandler.HandleLogin)
	engine.GET("/admin/logout", adminHandler.HandleLogout)

	admin := engine.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/dashboard", adminHandler.HandleDashboard)
		admin.POST("/generate_code", adminHandler.HandleGenerateCode)
		admin.POST("/password", adminHandler.HandleChangePassword)
	}

	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	return recorder
}

// redeemSession runs the code-entry flow and returns the resulting session
// cookies for follow-up requests.
func redeemSession(t *testing.T, engine *gin.Engine, token string) []*http.Cookie {
	t.Helper()

	recorder := doRequest(t, engine, http.MethodPost, "/", url.Values{"code": {token}}, nil)
	require.Equal(t, http.StatusFound, recorder.Code)
	require.Equal(t, "/submit_review", recorder.Header().Get("Location"))

	return recorder.Result().Cookies()
}

// loginAdminSession authenticates against the fake auth service and returns
// the admin session cookies.
func loginAdminSession(t *testing.T, engine *gin.Engine) []*http.Cookie {
	t.Helper()

	form := url.Values{"username": {"admin"}, "password": {"admin"}}
	recorder := doRequest(t, engine, http.MethodPost, "/admin/login", form, nil)
	require.Equal(t, http.StatusFound, recorder.Code)
	require.Equal(t, "/admin/dashboard", recorder.Header().Get("Location"))

	return recorder.Result().Cookies()
}
