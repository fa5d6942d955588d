package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ishanbagra18/artfolio-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const settingsKey = "site"

// SettingsStore keeps the single site settings document. Until an admin
// saves settings the defaults are served.
type SettingsStore struct {
	coll     *mongo.Collection
	defaults models.Settings
}

func NewSettingsStore(db *mongo.Database, defaults models.Settings) *SettingsStore {
	defaults.Key = settingsKey
	return &SettingsStore{coll: db.Collection(SettingsCollection), defaults: defaults}
}

func (s *SettingsStore) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := s.coll.FindOne(ctx, bson.M{"_id": settingsKey}).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		d := s.defaults
		return &d, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update applies upd atomically and returns the document as it was before
// and after the write.
func (s *SettingsStore) Update(ctx context.Context, upd models.SettingsUpdate) (prev, next *models.Settings, err error) {
	now := time.Now()
	set := bson.M{"updatedAt": now}
	if upd.SiteName != nil {
		set["siteName"] = *upd.SiteName
	}
	if upd.Tagline != nil {
		set["tagline"] = *upd.Tagline
	}
	if upd.ContactEmail != nil {
		set["contactEmail"] = *upd.ContactEmail
	}
	if upd.ContactPhone != nil {
		set["contactPhone"] = *upd.ContactPhone
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.SocialLinks != nil {
		set["socialLinks"] = *upd.SocialLinks
	}
	if upd.MaintenanceMode != nil {
		set["maintenanceMode"] = *upd.MaintenanceMode
	}
	if upd.MaintenanceMessage != nil {
		set["maintenanceMessage"] = *upd.MaintenanceMessage
	}
	if upd.MaxArtists != nil {
		set["maxArtists"] = *upd.MaxArtists
	}
	if upd.AllowRegistrations != nil {
		set["allowRegistrations"] = *upd.AllowRegistrations
	}

	onInsert, err := s.insertDefaults(set)
	if err != nil {
		return nil, nil, err
	}
	update := bson.M{"$set": set}
	if len(onInsert) > 0 {
		update["$setOnInsert"] = onInsert
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.Before)
	var before models.Settings
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": settingsKey}, update, opts).Decode(&before)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		before = s.defaults
	case err != nil:
		return nil, nil, err
	}

	after := before
	upd.Apply(&after)
	after.UpdatedAt = now
	return &before, &after, nil
}

// insertDefaults returns the default fields not already being $set, since
// the same path may not appear in both operators.
func (s *SettingsStore) insertDefaults(set bson.M) (bson.M, error) {
	raw, err := bson.Marshal(s.defaults)
	if err != nil {
		return nil, fmt.Errorf("marshal default settings: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal default settings: %w", err)
	}
	delete(doc, "_id")
	for key := range set {
		delete(doc, key)
	}
	return doc, nil
}
