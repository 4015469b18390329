package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	authsvc "github.com/omega-store/omega-backend/internal/auth"
	calendarsvc "github.com/omega-store/omega-backend/internal/calendar"
	chatsvc "github.com/omega-store/omega-backend/internal/chat"
	deliveriessvc "github.com/omega-store/omega-backend/internal/deliveries"
	employeessvc "github.com/omega-store/omega-backend/internal/employees"
	orderssvc "github.com/omega-store/omega-backend/internal/orders"
	paymentssvc "github.com/omega-store/omega-backend/internal/payments"
	salessvc "github.com/omega-store/omega-backend/internal/sales"
	taskssvc "github.com/omega-store/omega-backend/internal/tasks"
	timeclocksvc "github.com/omega-store/omega-backend/internal/timeclock"
	pkgAuth "github.com/omega-store/omega-backend/pkg/auth"
	"github.com/omega-store/omega-backend/pkg/config"
	"github.com/omega-store/omega-backend/pkg/db/models"
	"github.com/omega-store/omega-backend/pkg/enums"
	pkgerrors "github.com/omega-store/omega-backend/pkg/errors"
	"github.com/omega-store/omega-backend/pkg/logger"
	"github.com/omega-store/omega-backend/pkg/pagination"
	"github.com/omega-store/omega-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(context.Context, string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, authsvc.LoginInput) (*authsvc.LoginResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

func (stubAuthService) Refresh(context.Context, string) (*authsvc.LoginResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable")
}

func (stubAuthService) Logout(context.Context, string) error {
	return nil
}

type stubSalesService struct{}

func (stubSalesService) Create(context.Context, salessvc.CreateSaleInput, uuid.UUID) (*salessvc.SaleResponse, error) {
	panic("unimplemented")
}

func (stubSalesService) Get(context.Context, uuid.UUID) (*salessvc.SaleResponse, error) {
	panic("unimplemented")
}

func (stubSalesService) GetByFolio(context.Context, string) (*salessvc.SaleResponse, error) {
	panic("unimplemented")
}

func (stubSalesService) List(context.Context, salessvc.SaleFilters) (*salessvc.SaleList, error) {
	return &salessvc.SaleList{}, nil
}

type stubDeliveriesService struct{}

func (stubDeliveriesService) CreateFromSale(context.Context, *models.Sale) error {
	panic("unimplemented")
}

func (stubDeliveriesService) Get(context.Context, uuid.UUID) (*deliveriessvc.DeliveryResponse, error) {
	panic("unimplemented")
}

func (stubDeliveriesService) List(context.Context, deliveriessvc.DeliveryFilters) (*deliveriessvc.DeliveryList, error) {
	return &deliveriessvc.DeliveryList{}, nil
}

func (stubDeliveriesService) UpdatePayload(context.Context, uuid.UUID, deliveriessvc.UpdateDeliveryInput) (*deliveriessvc.DeliveryResponse, error) {
	panic("unimplemented")
}

func (stubDeliveriesService) MarkDelivered(context.Context, uuid.UUID, uuid.UUID) (*deliveriessvc.DeliveryResponse, error) {
	panic("unimplemented")
}

func (stubDeliveriesService) Delete(context.Context, uuid.UUID) error {
	return nil
}

type stubOrdersService struct{}

func (stubOrdersService) Create(context.Context, orderssvc.CreateOrderInput, uuid.UUID) (*orderssvc.OrderResponse, error) {
	panic("unimplemented")
}

func (stubOrdersService) Get(context.Context, uuid.UUID) (*orderssvc.OrderResponse, error) {
	panic("unimplemented")
}

func (stubOrdersService) List(context.Context, pagination.Params, orderssvc.OrderFilters) (*orderssvc.OrderList, error) {
	return &orderssvc.OrderList{}, nil
}

func (stubOrdersService) UpdateStatus(context.Context, uuid.UUID, orderssvc.UpdateOrderStatusInput) (*orderssvc.OrderResponse, error) {
	panic("unimplemented")
}

type stubPaymentsService struct{}

func (stubPaymentsService) Create(context.Context, paymentssvc.CreatePaymentInput) (*paymentssvc.PaymentResponse, error) {
	panic("unimplemented")
}

func (stubPaymentsService) Get(context.Context, uuid.UUID) (*paymentssvc.PaymentResponse, error) {
	panic("unimplemented")
}

func (stubPaymentsService) List(context.Context, pagination.Params, paymentssvc.PaymentFilters) (*paymentssvc.PaymentList, error) {
	return &paymentssvc.PaymentList{}, nil
}

func (stubPaymentsService) Review(context.Context, uuid.UUID, paymentssvc.ReviewPaymentInput, uuid.UUID) (*paymentssvc.PaymentResponse, error) {
	panic("unimplemented")
}

func (stubPaymentsService) Delete(context.Context, uuid.UUID) error {
	return nil
}

type stubEmployeesService struct{}

func (stubEmployeesService) Create(context.Context, employeessvc.CreateEmployeeInput) (*employeessvc.CreatedEmployeeResponse, error) {
	panic("unimplemented")
}

func (stubEmployeesService) Get(context.Context, uuid.UUID) (*employeessvc.EmployeeResponse, error) {
	panic("unimplemented")
}

func (stubEmployeesService) List(context.Context, pagination.Params, employeessvc.EmployeeFilters) (*employeessvc.EmployeeList, error) {
	return &employeessvc.EmployeeList{}, nil
}

func (stubEmployeesService) Update(context.Context, uuid.UUID, employeessvc.UpdateEmployeeInput) (*employeessvc.EmployeeResponse, error) {
	panic("unimplemented")
}

func (stubEmployeesService) Deactivate(context.Context, uuid.UUID) error {
	return nil
}

type stubTasksService struct{}

func (stubTasksService) Create(context.Context, uuid.UUID, taskssvc.CreateTaskInput) (*taskssvc.TaskResponse, error) {
	panic("unimplemented")
}

func (stubTasksService) Get(context.Context, uuid.UUID) (*taskssvc.TaskResponse, error) {
	panic("unimplemented")
}

func (stubTasksService) List(context.Context, pagination.Params, taskssvc.TaskFilters) (*taskssvc.TaskList, error) {
	return &taskssvc.TaskList{}, nil
}

func (stubTasksService) Update(context.Context, uuid.UUID, taskssvc.UpdateTaskInput) (*taskssvc.TaskResponse, error) {
	panic("unimplemented")
}

func (stubTasksService) Delete(context.Context, uuid.UUID) error {
	return nil
}

type stubTimeclockService struct{}

func (stubTimeclockService) ClockIn(context.Context, uuid.UUID, timeclocksvc.ClockInInput) (*timeclocksvc.TimeEntryResponse, error) {
	panic("unimplemented")
}

func (stubTimeclockService) ClockOut(context.Context, uuid.UUID, timeclocksvc.ClockOutInput) (*timeclocksvc.TimeEntryResponse, error) {
	panic("unimplemented")
}

func (stubTimeclockService) Current(context.Context, uuid.UUID) (*timeclocksvc.TimeEntryResponse, error) {
	return &timeclocksvc.TimeEntryResponse{}, nil
}

func (stubTimeclockService) List(context.Context, pagination.Params, timeclocksvc.TimeEntryFilters) (*timeclocksvc.TimeEntryList, error) {
	return &timeclocksvc.TimeEntryList{}, nil
}

type stubChatService struct{}

func (stubChatService) Post(context.Context, uuid.UUID, chatsvc.PostMessageInput) (*chatsvc.MessageResponse, error) {
	panic("unimplemented")
}

func (stubChatService) List(context.Context, pagination.Params) (*chatsvc.MessageList, error) {
	return &chatsvc.MessageList{}, nil
}

type stubCalendarService struct{}

func (stubCalendarService) Create(context.Context, uuid.UUID, calendarsvc.CreateEventInput) (*calendarsvc.EventResponse, error) {
	panic("unimplemented")
}

func (stubCalendarService) Get(context.Context, uuid.UUID) (*calendarsvc.EventResponse, error) {
	panic("unimplemented")
}

func (stubCalendarService) ListWindow(context.Context, calendarsvc.EventFilters) (*calendarsvc.EventList, error) {
	return &calendarsvc.EventList{}, nil
}

func (stubCalendarService) Update(context.Context, uuid.UUID, calendarsvc.UpdateEventInput) (*calendarsvc.EventResponse, error) {
	panic("unimplemented")
}

func (stubCalendarService) Delete(context.Context, uuid.UUID) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		stubSessionChecker{},
		nil, // http metrics
		nil, // prometheus gatherer
		Services{
			Auth:       stubAuthService{},
			Sales:      stubSalesService{},
			Deliveries: stubDeliveriesService{},
			Orders:     stubOrdersService{},
			Payments:   stubPaymentsService{},
			Employees:  stubEmployeesService{},
			Tasks:      stubTasksService{},
			Timeclock:  stubTimeclockService{},
			Chat:       stubChatService{},
			Calendar:   stubCalendarService{},
		},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.Role) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestSalesListWithValidToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleAtCliente))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for sales list got %d", resp.Code)
	}
}

func TestEmployeeRoutesRequireManagePermission(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	empleado := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	empleado.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleEmpleado))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, empleado)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for EMPLEADO got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleAdminGeneral))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for ADMIN_GENERAL got %d", resp.Code)
	}
}

func TestPaymentDeleteRequiresReviewPermission(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	target := "/api/v1/payments/" + uuid.NewString()

	empleado := httptest.NewRequest(http.MethodDelete, target, nil)
	empleado.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleEmpleado))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, empleado)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for EMPLEADO got %d", resp.Code)
	}

	handler := httptest.NewRequest(http.MethodDelete, target, nil)
	handler.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleEncargadoPagoMexico))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, handler)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for payment handler got %d", resp.Code)
	}
}

func TestDeliveryWriteDeniedToEmpleado(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/deliveries/"+uuid.NewString()+"/payload", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleEmpleado))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for delivery write got %d", resp.Code)
	}
}

func TestTimeclockStatusWithValidToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/timeclock/status", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleEmpleado))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for timeclock status got %d", resp.Code)
	}
}

func TestLoginRouteIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"email":"ana@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 from stub login got %d", resp.Code)
	}
}
