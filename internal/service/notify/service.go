// Package notify delivers the patient and administrator emails. Delivery is
// always fire-and-forget: a notification failure must never fail the
// operation that triggered it.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

// Logger is the logging surface the notifier needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service sends transactional emails through SendGrid.
type Service struct {
	enabled       bool
	apiKey        string
	fromEmail     string
	fromName      string
	adminEmail    string
	adminName     string
	publicBaseURL string
	loc           *time.Location
	log           Logger
}

func NewService(enabled bool, apiKey, fromEmail, fromName, adminEmail, adminName, publicBaseURL string, loc *time.Location, log Logger) *Service {
	return &Service{
		enabled:       enabled,
		apiKey:        apiKey,
		fromEmail:     fromEmail,
		fromName:      fromName,
		adminEmail:    adminEmail,
		adminName:     adminName,
		publicBaseURL: publicBaseURL,
		loc:           loc,
		log:           log,
	}
}

func (s *Service) formatSlot(appt *domain.Appointment) string {
	return fmt.Sprintf("%s a las %s", appt.Date.In(s.loc).Format("02/01/2006"), appt.StartTime)
}

// AppointmentBooked mails the patient their confirmation with the
// self-service cancellation link, and gives the administrator a heads-up.
// The cancellation token only ever travels through this channel.
func (s *Service) AppointmentBooked(appt *domain.Appointment, token string) {
	slot := s.formatSlot(appt)
	service := appt.ServiceType.Label()

	cancelLink := fmt.Sprintf("%s/cancelar?token=%s", strings.TrimRight(s.publicBaseURL, "/"), token)
	patientBody := fmt.Sprintf(
		"Hola %s,\n\nTu turno de %s quedo agendado para el %s.\n\n"+
			"Si necesitas cancelarlo, podes hacerlo hasta 48 horas antes desde este enlace:\n%s\n\n"+
			"Muchas gracias.",
		appt.PatientName, service, slot, cancelLink)
	s.send(appt.Email, appt.PatientName,
		fmt.Sprintf("Turno confirmado - %s", slot), patientBody)

	adminBody := fmt.Sprintf("Nuevo turno agendado:\n\nPaciente: %s\nServicio: %s\nFecha: %s\nContacto: %s / %s",
		appt.PatientName, service, slot, appt.Email, appt.Phone)
	s.send(s.adminEmail, s.adminName,
		fmt.Sprintf("Nuevo turno: %s - %s", appt.PatientName, slot), adminBody)
}

// AppointmentCancelledByPatient notifies the administrator that a patient
// used their cancellation link.
func (s *Service) AppointmentCancelledByPatient(appt *domain.Appointment) {
	body := fmt.Sprintf("La paciente %s cancelo su turno de %s del %s.",
		appt.PatientName, appt.ServiceType.Label(), s.formatSlot(appt))
	s.send(s.adminEmail, s.adminName,
		fmt.Sprintf("Turno cancelado: %s", appt.PatientName), body)
}

// AppointmentCancelledByAdmin notifies the patient that the practice
// cancelled their appointment.
func (s *Service) AppointmentCancelledByAdmin(appt *domain.Appointment) {
	body := fmt.Sprintf(
		"Hola %s,\n\nLamentablemente tu turno de %s del %s fue cancelado por el consultorio.\n"+
			"Por favor comunicate para reagendar.\n\nDisculpa las molestias.",
		appt.PatientName, appt.ServiceType.Label(), s.formatSlot(appt))
	s.send(appt.Email, appt.PatientName, "Tu turno fue cancelado", body)
}

// AppointmentRescheduled notifies the patient of the new time.
func (s *Service) AppointmentRescheduled(appt *domain.Appointment) {
	body := fmt.Sprintf("Hola %s,\n\nTu turno de %s fue reprogramado para el %s.\n\nMuchas gracias.",
		appt.PatientName, appt.ServiceType.Label(), s.formatSlot(appt))
	s.send(appt.Email, appt.PatientName,
		fmt.Sprintf("Turno reprogramado - %s", s.formatSlot(appt)), body)
}

// DailyDigest mails the administrator the agenda for the given date.
func (s *Service) DailyDigest(date time.Time, appts []*domain.Appointment) {
	day := date.In(s.loc).Format("02/01/2006")

	var b strings.Builder
	if len(appts) == 0 {
		fmt.Fprintf(&b, "No hay turnos agendados para el %s.\n", day)
	} else {
		fmt.Fprintf(&b, "Turnos agendados para el %s:\n\n", day)
		for _, appt := range appts {
			fmt.Fprintf(&b, "- %s  %s (%s)\n", appt.StartTime, appt.PatientName, appt.ServiceType.Label())
		}
	}

	s.send(s.adminEmail, s.adminName, fmt.Sprintf("Agenda del %s", day), b.String())
}

// send dispatches one email on its own goroutine. Errors are logged and
// dropped.
func (s *Service) send(toEmail, toName, subject, body string) {
	if !s.enabled || toEmail == "" {
		return
	}

	go func() {
		from := mail.NewEmail(s.fromName, s.fromEmail)
		to := mail.NewEmail(toName, toEmail)
		message := mail.NewSingleEmail(from, subject, to, body, "")

		client := sendgrid.NewSendClient(s.apiKey)
		response, err := client.Send(message)
		if err != nil {
			s.log.Error("notify: failed to send email to %s (%s): %v", toEmail, subject, err)
			return
		}
		if response.StatusCode < 200 || response.StatusCode >= 300 {
			s.log.Error("notify: sendgrid returned status %d for %s (%s)", response.StatusCode, toEmail, subject)
			return
		}
		s.log.Info("notify: email sent to %s (%s)", toEmail, subject)
	}()
}
