package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"ico-admin.backend/internal/domain/entities"
	"ico-admin.backend/internal/interfaces/http/middleware"
	"ico-admin.backend/pkg/utils"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// withAuth stands in for the auth gate
func withAuth(authCtx *entities.AuthContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.AuthContextKey, authCtx)
		c.Set(middleware.AdminIDKey, authCtx.AdminID)
		c.Next()
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSONWithHeader(t *testing.T, r http.Handler, method, path, body, header, value string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(header, value)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type authServiceStub struct {
	loginInput    *entities.LoginInput
	loggedOut     string
	changedFor    uuid.UUID
	otpEmail      string
	verifiedOTP   *entities.VerifyOTPInput
	resetInput    *entities.ResetPasswordInput
	nonceAddress  string
	err           error
	loginResult   *entities.LoginResult
	nonceResult   *entities.NonceResult
	nonceVerified *entities.NonceVerification
}

func (s *authServiceStub) Login(_ context.Context, input *entities.LoginInput) (*entities.LoginResult, error) {
	s.loginInput = input
	return s.loginResult, s.err
}

func (s *authServiceStub) Logout(_ context.Context, token string) error {
	s.loggedOut = token
	return s.err
}

func (s *authServiceStub) IssueNonce(_ context.Context, address string) (*entities.NonceResult, error) {
	s.nonceAddress = address
	return s.nonceResult, s.err
}

func (s *authServiceStub) VerifyNonce(_ context.Context, _ *entities.VerifyNonceInput) (*entities.NonceVerification, error) {
	return s.nonceVerified, s.err
}

func (s *authServiceStub) RequestOTP(_ context.Context, email string) error {
	s.otpEmail = email
	return s.err
}

func (s *authServiceStub) VerifyOTP(_ context.Context, input *entities.VerifyOTPInput) error {
	s.verifiedOTP = input
	return s.err
}

func (s *authServiceStub) ResetPassword(_ context.Context, input *entities.ResetPasswordInput) error {
	s.resetInput = input
	return s.err
}

func (s *authServiceStub) ChangePassword(_ context.Context, adminID uuid.UUID, _ *entities.ChangePasswordInput) error {
	s.changedFor = adminID
	return s.err
}

type subAdminServiceStub struct {
	params  utils.PaginationParams
	query   string
	created *entities.CreateSubAdminInput
	updated uuid.UUID
	deleted uuid.UUID
	view    *entities.SubAdminView
	list    *entities.SubAdminList
	perms   *entities.SubAdminPermissions
	catalog []*entities.Permission
	err     error
}

func (s *subAdminServiceStub) ListSubAdmins(_ context.Context, params utils.PaginationParams, query string) (*entities.SubAdminList, error) {
	s.params, s.query = params, query
	return s.list, s.err
}

func (s *subAdminServiceStub) CreateSubAdmin(_ context.Context, input *entities.CreateSubAdminInput) (*entities.SubAdminView, error) {
	s.created = input
	return s.view, s.err
}

func (s *subAdminServiceStub) UpdateSubAdmin(_ context.Context, id uuid.UUID, _ *entities.UpdateSubAdminInput) (*entities.SubAdminView, error) {
	s.updated = id
	return s.view, s.err
}

func (s *subAdminServiceStub) DeleteSubAdmin(_ context.Context, id uuid.UUID) error {
	s.deleted = id
	return s.err
}

func (s *subAdminServiceStub) GetSubAdmin(context.Context, uuid.UUID) (*entities.SubAdminView, error) {
	return s.view, s.err
}

func (s *subAdminServiceStub) GetSubAdminPermissions(context.Context, uuid.UUID) (*entities.SubAdminPermissions, error) {
	return s.perms, s.err
}

func (s *subAdminServiceStub) ListAllPermissions(context.Context) ([]*entities.Permission, error) {
	return s.catalog, s.err
}

type userServiceStub struct {
	params       utils.PaginationParams
	query        string
	statusFilter string
	lastAction   string
	lastID       uuid.UUID
	reason       string
	address      string
	settings     *entities.AccountSettingsInput
	users        *entities.UserList
	kycUsers     *entities.KycUserList
	user         *entities.User
	counts       *entities.UserCounts
	profile      *entities.PublicProfile
	err          error
}

func (s *userServiceStub) record(action string, id uuid.UUID) error {
	s.lastAction, s.lastID = action, id
	return s.err
}

func (s *userServiceStub) ListUsers(_ context.Context, params utils.PaginationParams, query, statusFilter string) (*entities.UserList, error) {
	s.params, s.query, s.statusFilter = params, query, statusFilter
	return s.users, s.err
}

func (s *userServiceStub) ListKycUsers(_ context.Context, params utils.PaginationParams, query, statusFilter string) (*entities.KycUserList, error) {
	s.params, s.query, s.statusFilter = params, query, statusFilter
	return s.kycUsers, s.err
}

func (s *userServiceStub) ApproveKyc(_ context.Context, id uuid.UUID) error {
	return s.record("approve", id)
}

func (s *userServiceStub) RejectKyc(_ context.Context, id uuid.UUID, reason string) error {
	s.reason = reason
	return s.record("reject", id)
}

func (s *userServiceStub) DeleteKycDocuments(_ context.Context, id uuid.UUID) error {
	return s.record("deleteKyc", id)
}

func (s *userServiceStub) SuspendAccount(_ context.Context, id uuid.UUID) error {
	return s.record("suspend", id)
}

func (s *userServiceStub) ReactivateAccount(_ context.Context, id uuid.UUID) error {
	return s.record("activate", id)
}

func (s *userServiceStub) DisableTwoFactor(_ context.Context, id uuid.UUID) error {
	return s.record("2fa", id)
}

func (s *userServiceStub) DeleteAccount(_ context.Context, id uuid.UUID) error {
	return s.record("delete", id)
}

func (s *userServiceStub) UpdateAccountSettings(_ context.Context, address string, input *entities.AccountSettingsInput) error {
	s.address, s.settings = address, input
	return s.err
}

func (s *userServiceStub) ViewUser(_ context.Context, id uuid.UUID) (*entities.User, error) {
	s.lastAction, s.lastID = "viewUser", id
	return s.user, s.err
}

func (s *userServiceStub) ViewKyc(_ context.Context, id uuid.UUID) (*entities.User, error) {
	s.lastAction, s.lastID = "viewKyc", id
	return s.user, s.err
}

func (s *userServiceStub) GetUsersCount(context.Context) (*entities.UserCounts, error) {
	return s.counts, s.err
}

func (s *userServiceStub) GetUserByAddress(_ context.Context, address string) (*entities.PublicProfile, error) {
	s.address = address
	return s.profile, s.err
}

type reportServiceStub struct {
	kind       entities.SeriesKind
	graphInput *entities.GraphInput
	listInput  *entities.TransactionListInput
	params     utils.PaginationParams
	query      string
	status     string
	address    string
	graph      *entities.GraphResult
	paid       decimal.Decimal
	volume     decimal.Decimal
	tokenCount *entities.TokenCount
	recent     int64
	tx         *entities.Transaction
	txs        []*entities.Transaction
	sale       *entities.Sale
	saleTotal  decimal.Decimal
	list       *entities.TransactionList
	err        error
}

func (s *reportServiceStub) Graph(_ context.Context, kind entities.SeriesKind, input *entities.GraphInput) (*entities.GraphResult, error) {
	s.kind, s.graphInput = kind, input
	return s.graph, s.err
}

func (s *reportServiceStub) TotalPaidAmount(context.Context) (decimal.Decimal, error) {
	return s.paid, s.err
}

func (s *reportServiceStub) TotalCryptoVolume(context.Context) (decimal.Decimal, error) {
	return s.volume, s.err
}

func (s *reportServiceStub) TotalCryptoVolumeByWallet(_ context.Context, address string) (decimal.Decimal, error) {
	s.address = address
	return s.volume, s.err
}

func (s *reportServiceStub) TokenCount(context.Context) (*entities.TokenCount, error) {
	return s.tokenCount, s.err
}

func (s *reportServiceStub) SinceLastWeekSale(context.Context) (int64, error) {
	return s.recent, s.err
}

func (s *reportServiceStub) FindByOrderID(_ context.Context, orderID string) (*entities.Transaction, error) {
	s.query = orderID
	return s.tx, s.err
}

func (s *reportServiceStub) CurrentSale(context.Context) (*entities.Sale, error) {
	return s.sale, s.err
}

func (s *reportServiceStub) CheckSale(context.Context) (decimal.Decimal, error) {
	return s.saleTotal, s.err
}

func (s *reportServiceStub) ListTransactions(_ context.Context, params utils.PaginationParams, query, statusFilter string, input *entities.TransactionListInput) (*entities.TransactionList, error) {
	s.params, s.query, s.status, s.listInput = params, query, statusFilter, input
	return s.list, s.err
}

func (s *reportServiceStub) ListByWallet(_ context.Context, address string) ([]*entities.Transaction, error) {
	s.address = address
	return s.txs, s.err
}
