package repo

import (
	"encoding/json"
	"slices"

	"foodcycle/pkg/domain"
)

// Storage keys for session-scoped single values. Not part of the composite
// document; these never leave the local store.
const (
	keyIdentity = "user"
	keyDraft    = "draft"
	keySaved    = "saved"
)

// Identity returns the persisted session identity, if any. Read failures
// degrade to "not logged in".
func (r *Repository) Identity() (domain.Identity, bool) {
	raw, ok, err := r.store.Get(keyIdentity)
	if err != nil || !ok {
		return domain.Identity{}, false
	}
	var id domain.Identity
	if json.Unmarshal(raw, &id) != nil {
		return domain.Identity{}, false
	}
	if id.Name == "" || id.Contact == "" || id.Role == "" {
		return domain.Identity{}, false
	}
	return id, true
}

// SetIdentity persists the session identity. One identity exists per
// browsing session; it is replaced wholesale on login.
func (r *Repository) SetIdentity(id domain.Identity) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return r.store.Set(keyIdentity, raw)
}

// Draft returns the in-progress listing form, if one was saved.
func (r *Repository) Draft() (domain.Draft, bool) {
	raw, ok, err := r.store.Get(keyDraft)
	if err != nil || !ok {
		return domain.Draft{}, false
	}
	var d domain.Draft
	if json.Unmarshal(raw, &d) != nil {
		return domain.Draft{}, false
	}
	return d, true
}

// SaveDraft overwrites the single draft instance. Storage errors are
// swallowed: the feature degrades, the app does not break.
func (r *Repository) SaveDraft(d domain.Draft) {
	raw, err := json.Marshal(d)
	if err != nil {
		return
	}
	_ = r.store.Set(keyDraft, raw)
}

// ClearDraft drops the draft after a successful submission. Errors are
// swallowed.
func (r *Repository) ClearDraft() {
	_ = r.store.Delete(keyDraft)
}

// SavedFoodIDs returns the saved-set listing ids. The set is process-wide
// and deliberately not scoped per user identity: every session on one
// store shares it.
func (r *Repository) SavedFoodIDs() []string {
	raw, ok, err := r.store.Get(keySaved)
	if err != nil || !ok {
		return nil
	}
	var ids []string
	if json.Unmarshal(raw, &ids) != nil {
		return nil
	}
	return ids
}

// IsSaved reports whether a listing is in the saved set.
func (r *Repository) IsSaved(foodID string) bool {
	return slices.Contains(r.SavedFoodIDs(), foodID)
}

// ToggleSaved adds or removes a listing from the saved set and returns the
// new membership. Storage errors are swallowed.
func (r *Repository) ToggleSaved(foodID string) bool {
	ids := r.SavedFoodIDs()
	if idx := slices.Index(ids, foodID); idx >= 0 {
		ids = slices.Delete(ids, idx, idx+1)
	} else {
		ids = append(ids, foodID)
	}
	if raw, err := json.Marshal(ids); err == nil {
		_ = r.store.Set(keySaved, raw)
	}
	return slices.Contains(ids, foodID)
}
