package dashboard

import (
	"github.com/gabapcia/transferscope/internal/query"
)

// Effect is the side effect the front-end must carry out after a key press.
type Effect int

const (
	EffectNone Effect = iota
	EffectStartLoad
	EffectCancelLoad
	EffectSaveOutput
	EffectQuit
)

func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectStartLoad:
		return "start-load"
	case EffectCancelLoad:
		return "cancel-load"
	case EffectSaveOutput:
		return "save-output"
	case EffectQuit:
		return "quit"
	}
	return "unknown"
}

// Router maps key presses onto the dashboard state machine.
type Router struct{}

// NewRouter returns a Router.
func NewRouter() Router {
	return Router{}
}

// Handle applies key to state and q and returns what the front-end must do next.
// The error and notice of the previous frame are cleared first.
func (r Router) Handle(state *State, q *query.WalletQuery, key Key) Effect {
	if key.Code == KeyCtrlC {
		return EffectQuit
	}

	state.Err = nil
	state.Notice = ""

	switch state.Screen {
	case ScreenStartup:
		return r.startup(state, key)
	case ScreenQueryBuilder:
		if state.Editing {
			return r.edit(state, q, key)
		}
		return r.queryBuilder(state, q, key)
	case ScreenLoading:
		return r.loading(state, key)
	case ScreenMain:
		return r.main(state, key)
	case ScreenExiting:
		return r.exiting(state, key)
	}

	return EffectNone
}

func (Router) startup(state *State, key Key) Effect {
	switch {
	case key.is('c'):
		state.goTo(ScreenQueryBuilder)
	case key.is('q'):
		state.goTo(ScreenExiting)
	}
	return EffectNone
}

func (Router) queryBuilder(state *State, q *query.WalletQuery, key Key) Effect {
	switch {
	case key.is('y'):
		if err := q.Validate(); err != nil {
			state.Err = err
			return EffectNone
		}
		state.BeginLoad()
		return EffectStartLoad
	case key.is('e'):
		state.Editing = true
	case key.is('q'):
		state.goTo(ScreenExiting)
	case key.Code == KeyEsc:
		state.goTo(ScreenStartup)
	}
	return EffectNone
}

func (Router) edit(state *State, q *query.WalletQuery, key Key) Effect {
	switch key.Code {
	case KeyEsc:
		state.Editing = false
	case KeyUp:
		state.EditField = max(state.EditField-1, 0)
	case KeyDown:
		state.EditField = min(state.EditField+1, fieldCount-1)
	case KeyRune:
		switch state.EditField {
		case FieldAddress:
			q.Address += string(key.Rune)
		case FieldStartBlock:
			q.StartBlock += string(key.Rune)
		}
	case KeyBackspace:
		switch state.EditField {
		case FieldAddress:
			q.Address = dropLast(q.Address)
		case FieldStartBlock:
			q.StartBlock = dropLast(q.StartBlock)
		}
	case KeyEnter:
		switch state.EditField {
		case FieldAddress:
			state.EditField = FieldNative
		case FieldNative:
			q.WantNative = !q.WantNative
		case FieldERC20:
			q.WantERC20 = !q.WantERC20
		case FieldERC721:
			q.WantERC721 = !q.WantERC721
		case FieldChain:
			q.Chain = q.Chain.Next()
		}
	}
	return EffectNone
}

func (Router) loading(state *State, key Key) Effect {
	if key.is('q') || key.Code == KeyEsc {
		state.goTo(ScreenStartup)
		return EffectCancelLoad
	}
	return EffectNone
}

func (Router) main(state *State, key Key) Effect {
	if state.SavePrompt {
		switch {
		case key.is('y'):
			state.SavePrompt = false
			return EffectSaveOutput
		case key.is('n'), key.Code == KeyEsc:
			state.SavePrompt = false
		}
		return EffectNone
	}

	switch {
	case key.Code == KeyTab:
		state.ActiveTab = state.ActiveTab.Next()
	case key.Code == KeyShiftTab:
		state.ActiveTab = state.ActiveTab.Previous()
	case key.Code == KeyDown:
		state.ActiveTable().Next()
	case key.Code == KeyUp:
		state.ActiveTable().Previous()
	case key.is('c'):
		state.Editing = false
		state.goTo(ScreenQueryBuilder)
	case key.is('j'):
		state.SavePrompt = true
	case key.is('q'):
		state.goTo(ScreenExiting)
	}
	return EffectNone
}

func (Router) exiting(state *State, key Key) Effect {
	switch {
	case key.is('y'):
		return EffectQuit
	case key.is('n'), key.Code == KeyEsc:
		state.goTo(state.previous)
	}
	return EffectNone
}

func dropLast(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
