// Package view is the session-scoped navigation layer: a small state
// machine whose every transition runs a guard and re-renders its view
// model from current repository data. Nothing here is cached, so changes
// made by another session show up on the next navigation.
package view

import (
	"strings"

	"foodcycle/internal/repo"
	"foodcycle/pkg/domain"
)

// State names a navigable view.
type State string

const (
	StateLanding    State = "landing"
	StateLogin      State = "login"
	StateDonorHome  State = "donor-home"
	StateBuyerHome  State = "buyer-home"
	StateChatList   State = "chat-list"
	StateChatThread State = "chat-thread"
)

// threadRef identifies the currently open chat target.
type threadRef struct {
	foodID       string
	buyerContact string
}

// Machine drives navigation for one browsing session. The session
// identity is always read from the repository at transition time; the
// machine itself holds only navigation state.
type Machine struct {
	repo        *repo.Repository
	state       State
	pendingRole domain.Role
	thread      threadRef
	browse      BrowseOptions
}

// NewMachine derives the initial state from whether a session identity is
// already persisted: straight to the matching home, otherwise landing.
func NewMachine(r *repo.Repository) *Machine {
	m := &Machine{repo: r, state: StateLanding, browse: DefaultBrowseOptions()}
	if id, ok := r.Identity(); ok {
		switch id.Role {
		case domain.RoleDonor:
			m.state = StateDonorHome
		case domain.RoleBuyer:
			m.state = StateBuyerHome
		}
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// ChooseRole moves from the landing page into login for the picked role.
func (m *Machine) ChooseRole(role domain.Role) View {
	m.pendingRole = role
	return m.transition(StateLogin)
}

// Login persists the session identity and enters the role's home view.
// Name and contact are both required.
func (m *Machine) Login(name, contact string) (View, error) {
	name = strings.TrimSpace(name)
	contact = strings.TrimSpace(contact)
	if name == "" || contact == "" {
		return m.render(), &LoginError{Message: "Please enter your name and phone or email."}
	}
	if m.pendingRole == "" {
		return m.transition(StateLanding), nil
	}
	id := domain.Identity{Name: name, Contact: contact, Role: m.pendingRole}
	if err := m.repo.SetIdentity(id); err != nil {
		return m.render(), err
	}
	if id.Role == domain.RoleDonor {
		return m.transition(StateDonorHome), nil
	}
	return m.transition(StateBuyerHome), nil
}

// LoginError reports a rejected login attempt.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string {
	return e.Message
}

// Go navigates to a target state, running its guard first.
func (m *Machine) Go(target State) View {
	return m.transition(target)
}

// OpenThread enters the chat thread for a listing. Buyers always chat as
// themselves, and opening a thread without a prior interest record
// synthesizes one. Donors entering a thread mark their notifications read.
func (m *Machine) OpenThread(foodID, buyerContact string) View {
	id, ok := m.repo.Identity()
	if !ok {
		return m.transition(StateLanding)
	}
	switch id.Role {
	case domain.RoleBuyer:
		buyerContact = id.Contact
		// "Message donor" counts as interest so the conversation exists
		// for both sides. Runs on every open, duplicates included.
		_ = m.repo.RecordInterest(foodID, id)
	case domain.RoleDonor:
		_ = m.repo.MarkNotificationsRead()
	}
	m.thread = threadRef{foodID: foodID, buyerContact: buyerContact}
	return m.transition(StateChatThread)
}

// Back computes the structural back target for the current state and
// navigates there. No history stack is consulted.
func (m *Machine) Back() View {
	return m.transition(m.backTarget())
}

func (m *Machine) backTarget() State {
	switch m.state {
	case StateChatThread:
		return StateChatList
	case StateChatList:
		if id, ok := m.repo.Identity(); ok && id.Role == domain.RoleDonor {
			return StateDonorHome
		}
		return StateBuyerHome
	case StateDonorHome, StateBuyerHome:
		return StateLogin
	case StateLogin:
		return StateLanding
	default:
		return StateLanding
	}
}

// Browse updates the buyer marketplace filter, query and sort, then
// re-renders the buyer home.
func (m *Machine) Browse(opts BrowseOptions) View {
	m.browse = opts
	return m.transition(StateBuyerHome)
}

// SendMessage appends a chat message from the current session and returns
// the refreshed thread. Blank messages are dropped.
func (m *Machine) SendMessage(text string) View {
	id, ok := m.repo.Identity()
	if !ok || m.state != StateChatThread {
		return m.transition(StateLanding)
	}
	text = strings.TrimSpace(text)
	if text != "" {
		convID := threadConversationID(m.thread)
		_ = m.repo.RecordMessage(convID, id.Role, id.Name, text)
	}
	return m.render()
}

// SubmitReview records a buyer's rating for a listing and refreshes the
// marketplace. The repository clamps the rating.
func (m *Machine) SubmitReview(foodID string, rating int, comment string) View {
	id, ok := m.repo.Identity()
	if !ok || id.Role != domain.RoleBuyer {
		return m.transition(StateLanding)
	}
	_ = m.repo.RecordReview(foodID, id.Name, rating, comment)
	return m.transition(StateBuyerHome)
}

// SubmitListing validates and stores a donor's listing. On success the
// draft is cleared and the refreshed donor home is returned.
func (m *Machine) SubmitListing(sub repo.ListingSubmission) (View, error) {
	id, ok := m.repo.Identity()
	if !ok || id.Role != domain.RoleDonor {
		return m.transition(StateLanding), nil
	}
	if sub.ImageURL == "" {
		sub.ImageURL = DefaultImageURL()
	}
	if _, err := m.repo.CreateListing(sub, id); err != nil {
		return m.render(), err
	}
	m.repo.ClearDraft()
	return m.transition(StateDonorHome), nil
}

// transition applies the guard for the requested state and re-renders.
func (m *Machine) transition(target State) View {
	m.state = m.guard(target)
	return m.render()
}

// guard enforces that authenticated states have a persisted identity
// matching the requested role; everything else force-redirects to landing.
func (m *Machine) guard(target State) State {
	id, ok := m.repo.Identity()
	switch target {
	case StateLanding:
		return StateLanding
	case StateLogin:
		// A machine restored from a persisted identity never picked a
		// role explicitly; the persisted role stands in for it.
		if m.pendingRole == "" {
			if !ok || id.Role == "" {
				return StateLanding
			}
			m.pendingRole = id.Role
		}
		return StateLogin
	case StateDonorHome:
		if !ok || id.Role != domain.RoleDonor {
			return StateLanding
		}
	case StateBuyerHome:
		if !ok || id.Role != domain.RoleBuyer {
			return StateLanding
		}
	case StateChatList:
		if !ok {
			return StateLanding
		}
	case StateChatThread:
		if !ok {
			return StateLanding
		}
		if m.thread.foodID == "" || m.currentBuyerContact(id) == "" {
			return StateChatList
		}
	default:
		return StateLanding
	}
	return target
}

func (m *Machine) currentBuyerContact(id domain.Identity) string {
	if id.Role == domain.RoleBuyer {
		return id.Contact
	}
	return m.thread.buyerContact
}
