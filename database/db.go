package database

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// ─── Models ──────────────────────────────────────────────────────────────────

// AIPlan is the persisted record of one planner run: the lead's contact
// details, the normalized request, and the generated plan. Array and object
// fields are stored as JSON text. AIResponse holds the raw model output as an
// audit trail and is empty for rule-based plans.
type AIPlan struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Destination    string    `json:"destination"`
	Days           int       `json:"days"`
	Month          string    `json:"month"`
	StyleJSON      string    `json:"style_json"`
	TravelType     string    `json:"travel_type"`
	Budget         string    `json:"budget"`
	Pace           string    `json:"pace"`
	BudgetEstimate string    `json:"budget_estimate"`
	HotelType      string    `json:"hotel_type"`
	ItineraryJSON  string    `json:"itinerary_json"`
	HighlightsJSON string    `json:"highlights_json"`
	TipsJSON       string    `json:"tips_json"`
	WhatsAppLink   string    `json:"whatsapp_link"`
	AIResponse     string    `json:"ai_response,omitempty"`
	PlanSource     string    `json:"plan_source"`
	CreatedAt      time.Time `json:"created_at"`
}

// TripBooking is a lead captured from the generic booking form.
type TripBooking struct {
	ID              string    `json:"id"`
	Destination     string    `json:"destination"`
	TravelMonth     string    `json:"travel_month"`
	Travelers       int       `json:"travelers"`
	BudgetRange     string    `json:"budget_range"`
	TravelStyles    string    `json:"travel_styles_json"`
	Accommodation   string    `json:"accommodation_type"`
	Transport       string    `json:"transport_mode"`
	Interests       string    `json:"interests_json"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	SpecialRequests string    `json:"special_requests"`
	Status          string    `json:"status"`
	Priority        string    `json:"priority"`
	Source          string    `json:"source"`
	CreatedAt       time.Time `json:"created_at"`
}

// ─── Init ─────────────────────────────────────────────────────────────────────

func Init(dsn string, log *zap.Logger) error {
	var err error
	DB, err = sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(5 * time.Minute)

	// The database may take a moment to be ready on fresh deployments.
	for i := 0; i < 10; i++ {
		if err = DB.Ping(); err == nil {
			break
		}
		log.Warn("waiting for database", zap.Int("attempt", i+1), zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return err
	}

	if err := migrate(); err != nil {
		return err
	}
	log.Info("database connected and migrated")
	return nil
}

// ─── Migrations ───────────────────────────────────────────────────────────────

func migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS ai_plans (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL,
			email           TEXT NOT NULL,
			phone           TEXT NOT NULL,
			destination     TEXT NOT NULL,
			days            INTEGER NOT NULL,
			month           TEXT NOT NULL,
			style_json      TEXT,
			travel_type     TEXT DEFAULT 'solo',
			budget          TEXT DEFAULT 'mid',
			pace            TEXT DEFAULT 'balanced',
			budget_estimate TEXT,
			hotel_type      TEXT,
			itinerary_json  TEXT,
			highlights_json TEXT,
			tips_json       TEXT,
			whatsapp_link   TEXT,
			ai_response     TEXT,
			plan_source     TEXT DEFAULT 'rule-based',
			created_at      TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS trip_bookings (
			id                 TEXT PRIMARY KEY,
			destination        TEXT NOT NULL,
			travel_month       TEXT NOT NULL,
			travelers          INTEGER DEFAULT 1,
			budget_range       TEXT NOT NULL,
			travel_styles_json TEXT,
			accommodation_type TEXT,
			transport_mode     TEXT,
			interests_json     TEXT,
			name               TEXT NOT NULL,
			email              TEXT,
			phone              TEXT NOT NULL,
			special_requests   TEXT,
			status             TEXT DEFAULT 'pending',
			priority           TEXT DEFAULT 'medium',
			source             TEXT DEFAULT 'website',
			created_at         TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_ai_plans_created_at
			ON ai_plans(created_at DESC)`,

		`CREATE INDEX IF NOT EXISTS idx_trip_bookings_status
			ON trip_bookings(status)`,
	}

	for _, m := range migrations {
		if _, err := DB.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// ─── CRUD ─────────────────────────────────────────────────────────────────────

func SaveAIPlan(p *AIPlan) error {
	_, err := DB.Exec(`
		INSERT INTO ai_plans (
			id, name, email, phone, destination, days, month, style_json,
			travel_type, budget, pace, budget_estimate, hotel_type,
			itinerary_json, highlights_json, tips_json, whatsapp_link,
			ai_response, plan_source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		p.ID, p.Name, p.Email, p.Phone, p.Destination, p.Days, p.Month, p.StyleJSON,
		p.TravelType, p.Budget, p.Pace, p.BudgetEstimate, p.HotelType,
		p.ItineraryJSON, p.HighlightsJSON, p.TipsJSON, p.WhatsAppLink,
		p.AIResponse, p.PlanSource)
	return err
}

func GetAIPlan(id string) (*AIPlan, error) {
	p := &AIPlan{}
	err := DB.QueryRow(`
		SELECT id, name, email, phone, destination, days, month, style_json,
			travel_type, budget, pace, budget_estimate, hotel_type,
			itinerary_json, highlights_json, tips_json, whatsapp_link,
			ai_response, plan_source, created_at
		FROM ai_plans WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Destination, &p.Days, &p.Month, &p.StyleJSON,
			&p.TravelType, &p.Budget, &p.Pace, &p.BudgetEstimate, &p.HotelType,
			&p.ItineraryJSON, &p.HighlightsJSON, &p.TipsJSON, &p.WhatsAppLink,
			&p.AIResponse, &p.PlanSource, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func SaveBooking(b *TripBooking) error {
	_, err := DB.Exec(`
		INSERT INTO trip_bookings (
			id, destination, travel_month, travelers, budget_range,
			travel_styles_json, accommodation_type, transport_mode, interests_json,
			name, email, phone, special_requests, status, priority, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		b.ID, b.Destination, b.TravelMonth, b.Travelers, b.BudgetRange,
		b.TravelStyles, b.Accommodation, b.Transport, b.Interests,
		b.Name, b.Email, b.Phone, b.SpecialRequests, b.Status, b.Priority, b.Source)
	return err
}

func GetBooking(id string) (*TripBooking, error) {
	b := &TripBooking{}
	err := DB.QueryRow(`
		SELECT id, destination, travel_month, travelers, budget_range,
			travel_styles_json, accommodation_type, transport_mode, interests_json,
			name, email, phone, special_requests, status, priority, source, created_at
		FROM trip_bookings WHERE id = $1`, id).
		Scan(&b.ID, &b.Destination, &b.TravelMonth, &b.Travelers, &b.BudgetRange,
			&b.TravelStyles, &b.Accommodation, &b.Transport, &b.Interests,
			&b.Name, &b.Email, &b.Phone, &b.SpecialRequests, &b.Status, &b.Priority, &b.Source, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func ListBookings(limit int) ([]TripBooking, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := DB.Query(`
		SELECT id, destination, travel_month, travelers, budget_range,
			travel_styles_json, accommodation_type, transport_mode, interests_json,
			name, email, phone, special_requests, status, priority, source, created_at
		FROM trip_bookings
		ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []TripBooking
	for rows.Next() {
		var b TripBooking
		if err := rows.Scan(&b.ID, &b.Destination, &b.TravelMonth, &b.Travelers, &b.BudgetRange,
			&b.TravelStyles, &b.Accommodation, &b.Transport, &b.Interests,
			&b.Name, &b.Email, &b.Phone, &b.SpecialRequests, &b.Status, &b.Priority, &b.Source, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
