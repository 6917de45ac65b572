// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"taxinvoice-backend/models"
	"taxinvoice-backend/session"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// draftMaxIdle is how long an untouched draft survives before eviction.
const draftMaxIdle = 24 * time.Hour

type ReminderService struct {
	db     *gorm.DB
	drafts *session.Store
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB, drafts *session.Store) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db:     db,
		drafts: drafts,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Payment reminders every day at 9 AM, draft cleanup hourly
	c.AddFunc("0 9 * * *", s.SendPaymentReminders)
	c.AddFunc("@hourly", s.CleanupDrafts)

	c.Start()
	log.Println("Reminder scheduler started")
}

// CleanupDrafts evicts drafts nobody has touched for a day.
func (s *ReminderService) CleanupDrafts() {
	if evicted := s.drafts.ExpireIdle(draftMaxIdle); evicted > 0 {
		log.Printf("Evicted %d idle draft(s)", evicted)
	}
}

// SendPaymentReminders messages every buyer whose balance has been pending
// past its due date, across all active users.
func (s *ReminderService) SendPaymentReminders() {
	log.Println("Starting payment reminder processing...")

	var users []models.User
	if err := s.db.Find(&users, "is_active = ?", true).Error; err != nil {
		log.Printf("Failed to fetch users: %v", err)
		return
	}

	for _, user := range users {
		s.ProcessUserReminders(user)
	}

	log.Println("Payment reminder processing completed")
}

func (s *ReminderService) ProcessUserReminders(user models.User) {
	companies, err := s.getOverdueCompanies(user.ID)
	if err != nil {
		log.Printf("User %s: Failed to get overdue companies: %v", user.ID, err)
		return
	}

	for _, company := range companies {
		s.sendReminder(user, company)
	}
}

// getOverdueCompanies returns buyers with a pending balance whose latest
// invoice's due date has passed.
func (s *ReminderService) getOverdueCompanies(userID uuid.UUID) ([]models.Company, error) {
	var companies []models.Company
	err := s.db.Raw(`
		SELECT DISTINCT c.* FROM companies c
		JOIN invoices i ON i.company_id = c.id
		WHERE c.user_id = ?
		AND c.phone <> ''
		AND c.pending_amount > 0
		AND c.deleted_at IS NULL
		AND i.due_date < ?
	`, userID, time.Now()).Scan(&companies).Error
	return companies, err
}

func (s *ReminderService) sendReminder(user models.User, company models.Company) {
	message := fmt.Sprintf(
		"Dear %s, a payment of Rs. %.2f to %s is pending. Kindly arrange the payment at your earliest convenience.",
		company.Name, company.PendingAmount, user.BusinessName,
	)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(company.Phone)
	params.SetBody(message)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", company.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", company.Phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", company.Phone)
	}

	reminderLog := models.ReminderLog{
		UserID:       user.ID,
		CompanyID:    company.ID,
		Amount:       company.PendingAmount,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for company %s: %v", company.ID, err)
	}
}
