package bot

import "sync"

// Langkah-langkah percakapan multi-step. Satu user maksimal satu flow aktif;
// /start, pembatalan, atau kembali ke menu utama menghapusnya.
const (
	StepRegName  = "reg_name"
	StepRegPhone = "reg_phone"

	StepBookingDate           = "booking_date"
	StepBookingPeople         = "booking_people"
	StepBookingTable          = "booking_table"
	StepBookingTime           = "booking_time"
	StepBookingPreorder       = "booking_preorder"
	StepBookingPreorderAmount = "booking_preorder_amount"

	StepAdminTableName      = "admin_table_name"
	StepAdminTableSeats     = "admin_table_seats"
	StepAdminTableNeighbors = "admin_table_neighbors"
	StepAdminMenuName       = "admin_menu_name"
	StepAdminMenuPrice      = "admin_menu_price"
)

// Session menyimpan langkah saat ini plus field parsial yang sudah terkumpul.
type Session struct {
	Step string
	Data map[string]interface{}
}

// SessionStore adalah penyimpanan state percakapan per user, in-memory.
// Update untuk satu percakapan diproses berurutan; mutex hanya melindungi
// interleaving antar user yang berbeda.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*Session)}
}

// Get mengembalikan session user atau nil.
func (s *SessionStore) Get(userID int64) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[userID]
}

// SetStep memindahkan user ke langkah baru, mempertahankan data yang ada.
func (s *SessionStore) SetStep(userID int64, step string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessions[userID]
	if sess == nil {
		sess = &Session{Data: make(map[string]interface{})}
		s.sessions[userID] = sess
	}
	sess.Step = step
}

// SetValue menyimpan satu field parsial, membuat session bila perlu.
func (s *SessionStore) SetValue(userID int64, key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessions[userID]
	if sess == nil {
		sess = &Session{Data: make(map[string]interface{})}
		s.sessions[userID] = sess
	}
	sess.Data[key] = value
}

// Value membaca satu field parsial; ok false jika tidak ada session/field.
func (s *SessionStore) Value(userID int64, key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := s.sessions[userID]
	if sess == nil {
		return nil, false
	}
	v, ok := sess.Data[key]
	return v, ok
}

func (s *SessionStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
