package controllers

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/ishanbagra18/artfolio-server/database"
	"github.com/ishanbagra18/artfolio-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeContacts struct {
	mu    sync.Mutex
	items []*models.ContactMessage
}

func (f *fakeContacts) find(id primitive.ObjectID) *models.ContactMessage {
	for _, m := range f.items {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (f *fakeContacts) Insert(_ context.Context, msg *models.ContactMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg.ID = primitive.NewObjectID()
	cp := *msg
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeContacts) List(_ context.Context, skip, limit int64) ([]models.ContactMessage, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.ContactMessage{}
	for i := skip; i < int64(len(f.items)) && i < skip+limit; i++ {
		out = append(out, *f.items[i])
	}
	return out, int64(len(f.items)), nil
}

func (f *fakeContacts) FindByID(_ context.Context, id primitive.ObjectID) (*models.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m := f.find(id); m != nil {
		cp := *m
		return &cp, nil
	}
	return nil, database.ErrNotFound
}

func (f *fakeContacts) SetStatus(_ context.Context, id primitive.ObjectID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.find(id)
	if m == nil {
		return database.ErrNotFound
	}
	m.Status = status
	return nil
}

func (f *fakeContacts) SaveReply(_ context.Context, id primitive.ObjectID, reply string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.find(id)
	if m == nil {
		return database.ErrNotFound
	}
	m.Reply, m.RepliedAt, m.Status = reply, &at, models.ContactStatusReplied
	return nil
}

func (f *fakeContacts) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, m := range f.items {
		if m.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeContacts) CountUnread(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, m := range f.items {
		if m.Status == models.ContactStatusNew {
			n++
		}
	}
	return n, nil
}

func newContactRouter(contacts *fakeContacts, m *recordingMailer) http.Handler {
	notifier := newNotifier(m)
	notifier.AdminEmail = "admin@studio.example"
	ctl := NewContactController(contacts, notifier, zap.NewNop())
	ctl.now = clock

	r := newEngine()
	r.POST("/api/contact", ctl.SubmitContact())
	admin := r.Group("/api/admin/contacts", as("admin", models.RoleAdmin))
	admin.GET("", ctl.ListContacts())
	admin.PUT("/:id/read", ctl.MarkRead())
	admin.POST("/:id/reply", ctl.Reply())
	admin.DELETE("/:id", ctl.DeleteContact())
	return r
}

func TestSubmitContact_NotifiesAdmin(t *testing.T) {
	contacts, m := &fakeContacts{}, &recordingMailer{}
	r := newContactRouter(contacts, m)

	w := doJSON(t, r, http.MethodPost, "/api/contact", map[string]string{
		"name": "Jo Client", "email": "jo@example.com", "subject": "Commission", "message": "Can you paint my dog?",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.Len(t, contacts.items, 1)
	assert.Equal(t, models.ContactStatusNew, contacts.items[0].Status)

	sent := m.emails()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"admin@studio.example"}, sent[0].To)
	assert.Equal(t, "jo@example.com", sent[0].ReplyTo)
	assert.Equal(t, "New contact message: Commission", sent[0].Subject)

	w = doJSON(t, r, http.MethodPost, "/api/contact", map[string]string{"name": "J", "email": "bad", "message": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReplyContact(t *testing.T) {
	tests := []struct {
		name    string
		fail    bool
		emailed bool
	}{
		{"email delivered", false, true},
		{"email failed, reply still stored", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contacts, m := &fakeContacts{}, &recordingMailer{}
			if tt.fail {
				m.fail = map[string]bool{"jo@example.com": true}
			}
			require.NoError(t, contacts.Insert(context.Background(), &models.ContactMessage{
				Name: "Jo", Email: "jo@example.com", Message: "Hello there", Status: models.ContactStatusNew,
			}))
			id := contacts.items[0].ID.Hex()
			r := newContactRouter(contacts, m)

			w := doJSON(t, r, http.MethodPost, "/api/admin/contacts/"+id+"/reply", map[string]string{"reply": "Happy to help"})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var body struct {
				Emailed bool `json:"emailed"`
			}
			decode(t, w, &body)
			assert.Equal(t, tt.emailed, body.Emailed)

			stored := contacts.items[0]
			assert.Equal(t, "Happy to help", stored.Reply)
			assert.Equal(t, models.ContactStatusReplied, stored.Status)
			require.NotNil(t, stored.RepliedAt)
		})
	}
}

func TestContactAdminActions(t *testing.T) {
	contacts := &fakeContacts{}
	r := newContactRouter(contacts, &recordingMailer{})
	require.NoError(t, contacts.Insert(context.Background(), &models.ContactMessage{Name: "Jo", Email: "jo@example.com", Status: models.ContactStatusNew}))
	id := contacts.items[0].ID.Hex()

	w := doJSON(t, r, http.MethodPut, "/api/admin/contacts/"+id+"/read", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ContactStatusRead, contacts.items[0].Status)

	w = doJSON(t, r, http.MethodGet, "/api/admin/contacts?page=1&recordPerPage=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = doJSON(t, r, http.MethodDelete, "/api/admin/contacts/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/api/admin/contacts/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/api/admin/contacts/xyz", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
