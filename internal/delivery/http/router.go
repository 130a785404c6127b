package http

import (
	"net/http"

	"hms-backend/internal/delivery/http/handler"
	"hms-backend/internal/delivery/http/middleware"
	"hms-backend/internal/domain/entity"
	"hms-backend/pkg/response"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Role sets used by the route table. A nil set marks a public route.
var (
	public        []entity.Role
	authenticated = []entity.Role{entity.RoleAdmin, entity.RoleDoctor, entity.RolePatient}
	adminOnly     = []entity.Role{entity.RoleAdmin}
	staff         = []entity.Role{entity.RoleAdmin, entity.RoleDoctor}
	doctorOnly    = []entity.Role{entity.RoleDoctor}
	patientOnly   = []entity.Role{entity.RolePatient}
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Patient      *handler.PatientHandler
	Doctor       *handler.DoctorHandler
	Facility     *handler.FacilityHandler
	Appointment  *handler.AppointmentHandler
	Medication   *handler.MedicationHandler
	Prescription *handler.PrescriptionHandler
	Lab          *handler.LabHandler
	Billing      *handler.BillingHandler
	Timeline     *handler.TimelineHandler
	Dashboard    *handler.DashboardHandler
	Portal       *handler.PortalHandler
	Notification *handler.NotificationHandler
	Clinical     *handler.ClinicalHandler
	Referral     *handler.ReferralHandler
	SoapNote     *handler.SoapNoteHandler
	Refill       *handler.RefillHandler
	Feedback     *handler.FeedbackHandler
	Template     *handler.PrescriptionTemplateHandler
	Recurring    *handler.RecurringAppointmentHandler
}

type route struct {
	method  string
	path    string
	handler http.HandlerFunc
	roles   []entity.Role
}

type Router struct {
	router            *mux.Router
	handlers          Handlers
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	metricsMiddleware *middleware.MetricsMiddleware
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		handlers:          handlers,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		metricsMiddleware: metricsMiddleware,
	}
}

func (r *Router) routes() []route {
	h := r.handlers
	return []route{
		// Health check
		{http.MethodGet, "/health", r.healthCheck, public},

		// Auth
		{http.MethodPost, "/auth/register", h.Auth.Register, public},
		{http.MethodPost, "/auth/login", h.Auth.Login, public},
		{http.MethodGet, "/auth/me", h.Auth.Me, authenticated},

		// Patients
		{http.MethodGet, "/patients", h.Patient.List, staff},
		{http.MethodPost, "/patients", h.Patient.Create, staff},
		{http.MethodGet, "/patients/{id}", h.Patient.Get, staff},
		{http.MethodPatch, "/patients/{id}", h.Patient.Update, staff},
		{http.MethodDelete, "/patients/{id}", h.Patient.Delete, adminOnly},

		// Doctors
		{http.MethodGet, "/doctors", h.Doctor.List, staff},
		{http.MethodPost, "/doctors", h.Doctor.Create, adminOnly},
		{http.MethodGet, "/doctors/{id}", h.Doctor.Get, staff},

		// Facilities
		{http.MethodGet, "/departments", h.Facility.ListDepartments, staff},
		{http.MethodPost, "/departments", h.Facility.CreateDepartment, adminOnly},
		{http.MethodGet, "/rooms", h.Facility.ListRooms, adminOnly},
		{http.MethodPost, "/rooms", h.Facility.CreateRoom, adminOnly},
		{http.MethodGet, "/beds", h.Facility.ListBeds, adminOnly},
		{http.MethodPost, "/beds", h.Facility.CreateBed, adminOnly},
		{http.MethodPatch, "/beds/{id}", h.Facility.UpdateBed, adminOnly},

		// Appointments
		{http.MethodGet, "/appointments", h.Appointment.List, staff},
		{http.MethodPost, "/appointments", h.Appointment.Create, staff},
		{http.MethodPatch, "/appointments/{id}/status", h.Appointment.UpdateStatus, staff},

		// Pharmacy
		{http.MethodGet, "/medications", h.Medication.List, staff},
		{http.MethodPost, "/medications", h.Medication.Create, adminOnly},
		{http.MethodGet, "/inventory/expiring", h.Medication.Expiring, staff},
		{http.MethodGet, "/inventory/low-stock", h.Medication.LowStock, staff},
		{http.MethodGet, "/prescriptions", h.Prescription.List, staff},
		{http.MethodPost, "/prescriptions", h.Prescription.Create, doctorOnly},
		{http.MethodGet, "/prescriptions/{id}", h.Prescription.Get, staff},

		// Laboratory
		{http.MethodGet, "/lab-tests", h.Lab.ListTests, staff},
		{http.MethodPost, "/lab-tests", h.Lab.CreateTest, adminOnly},
		{http.MethodGet, "/test-orders", h.Lab.ListOrders, staff},
		{http.MethodPost, "/test-orders", h.Lab.CreateOrder, staff},
		{http.MethodPatch, "/test-orders/{id}", h.Lab.UpdateOrder, staff},

		// Billing
		{http.MethodGet, "/bills", h.Billing.ListBills, adminOnly},
		{http.MethodPost, "/bills", h.Billing.CreateBill, adminOnly},
		{http.MethodGet, "/bills/{id}", h.Billing.GetBill, adminOnly},
		{http.MethodPatch, "/bills/{id}/cancel", h.Billing.CancelBill, adminOnly},
		{http.MethodGet, "/bills/{id}/payments", h.Billing.ListPayments, adminOnly},
		{http.MethodPost, "/payments", h.Billing.CreatePayment, adminOnly},

		// Clinical records
		{http.MethodGet, "/patient-alerts/{patientId}", h.Clinical.ListAlerts, staff},
		{http.MethodPost, "/patient-alerts", h.Clinical.CreateAlert, staff},
		{http.MethodPatch, "/patient-alerts/{id}", h.Clinical.UpdateAlert, staff},
		{http.MethodGet, "/health-vitals/{patientId}", h.Clinical.ListVitals, staff},
		{http.MethodPost, "/health-vitals", h.Clinical.RecordVitals, staff},
		{http.MethodGet, "/vaccinations/{patientId}", h.Clinical.ListVaccinations, staff},
		{http.MethodPost, "/vaccinations", h.Clinical.RecordVaccination, staff},

		// Doctor workflows
		{http.MethodGet, "/referrals/sent", h.Referral.Sent, doctorOnly},
		{http.MethodGet, "/referrals/received", h.Referral.Received, doctorOnly},
		{http.MethodPost, "/referrals", h.Referral.Create, doctorOnly},
		{http.MethodPatch, "/referrals/{id}/status", h.Referral.UpdateStatus, doctorOnly},
		{http.MethodGet, "/soap-notes/appointment/{appointmentId}", h.SoapNote.GetByAppointment, doctorOnly},
		{http.MethodPost, "/soap-notes", h.SoapNote.Create, doctorOnly},
		{http.MethodPatch, "/soap-notes/{id}", h.SoapNote.Update, doctorOnly},
		{http.MethodGet, "/refill-requests/patient", h.Refill.ListForPatient, patientOnly},
		{http.MethodGet, "/refill-requests/doctor", h.Refill.ListForDoctor, doctorOnly},
		{http.MethodPost, "/refill-requests", h.Refill.Create, patientOnly},
		{http.MethodPatch, "/refill-requests/{id}/status", h.Refill.UpdateStatus, doctorOnly},
		{http.MethodGet, "/prescription-templates", h.Template.List, doctorOnly},
		{http.MethodPost, "/prescription-templates", h.Template.Create, doctorOnly},
		{http.MethodDelete, "/prescription-templates/{id}", h.Template.Delete, doctorOnly},
		{http.MethodGet, "/recurring-appointments", h.Recurring.List, doctorOnly},
		{http.MethodPost, "/recurring-appointments", h.Recurring.Create, doctorOnly},
		{http.MethodPatch, "/recurring-appointments/{id}", h.Recurring.Update, doctorOnly},

		// Feedback
		{http.MethodGet, "/feedback/doctor/{doctorId}", h.Feedback.ListForDoctor, authenticated},
		{http.MethodPost, "/feedback", h.Feedback.Create, patientOnly},

		// Timeline and dashboard
		{http.MethodGet, "/patient-events/{patientId}", h.Timeline.GetTimeline, staff},
		{http.MethodGet, "/metrics", h.Dashboard.GetMetrics, adminOnly},

		// Patient portal
		{http.MethodGet, "/portal/patient", h.Portal.Profile, patientOnly},
		{http.MethodGet, "/portal/appointments", h.Portal.Appointments, patientOnly},
		{http.MethodGet, "/portal/prescriptions", h.Portal.Prescriptions, patientOnly},
		{http.MethodGet, "/portal/lab-results", h.Portal.LabResults, patientOnly},
		{http.MethodGet, "/portal/bills", h.Portal.Bills, patientOnly},
		{http.MethodGet, "/portal/timeline", h.Portal.Timeline, patientOnly},
		{http.MethodGet, "/portal/alerts", h.Clinical.MyAlerts, patientOnly},
		{http.MethodGet, "/portal/vitals", h.Clinical.MyVitals, patientOnly},
		{http.MethodPost, "/portal/vitals", h.Clinical.RecordMyVitals, patientOnly},
		{http.MethodGet, "/portal/vaccinations", h.Clinical.MyVaccinations, patientOnly},

		// Doctor self views
		{http.MethodGet, "/doctor/profile", h.Doctor.Profile, doctorOnly},
		{http.MethodGet, "/doctor/appointments", h.Doctor.MyAppointments, doctorOnly},
		{http.MethodGet, "/doctor/patients", h.Doctor.MyPatients, doctorOnly},

		// Notifications and messages
		{http.MethodGet, "/notifications", h.Notification.List, authenticated},
		{http.MethodPost, "/notifications", h.Notification.Create, adminOnly},
		{http.MethodGet, "/notifications/unread", h.Notification.ListUnread, authenticated},
		{http.MethodPatch, "/notifications/read-all", h.Notification.MarkAllRead, authenticated},
		{http.MethodPatch, "/notifications/{id}/read", h.Notification.MarkRead, authenticated},
		{http.MethodGet, "/messages", h.Notification.ListMessages, authenticated},
		{http.MethodPost, "/messages", h.Notification.SendMessage, authenticated},
		{http.MethodGet, "/messages/conversation/{otherUserId}", h.Notification.Conversation, authenticated},
		{http.MethodPatch, "/messages/{id}/read", h.Notification.MarkMessageRead, authenticated},
	}
}

func (r *Router) Setup() http.Handler {
	api := r.router.PathPrefix("/api").Subrouter()

	for _, rt := range r.routes() {
		var h http.Handler = rt.handler
		if rt.roles != nil {
			h = r.authMiddleware.Authenticate(middleware.RequireRole(rt.roles...)(h))
		}
		api.Handle(rt.path, h).Methods(rt.method)
	}

	// Prometheus exposition
	r.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// A subrouter without its own fallbacks reports a method mismatch as a miss.
	jsonFallbacks(r.router)
	jsonFallbacks(api)

	r.router.Use(r.metricsMiddleware.Handle)

	// CORS wraps the whole router so preflight requests never need a route.
	return r.corsMiddleware.Handle(r.router)
}

func jsonFallbacks(rt *mux.Router) {
	rt.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, "Route not found")
	})
	rt.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
