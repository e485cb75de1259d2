package collections

import (
	"fakenft/internal/domain"
	"fakenft/internal/network"
)

type NavigationKind int

const (
	NavigationBase NavigationKind = iota
	NavigationCollectionDetails
	NavigationSortSelection
)

func (k NavigationKind) String() string {
	switch k {
	case NavigationBase:
		return "base"
	case NavigationCollectionDetails:
		return "collection-details"
	case NavigationSortSelection:
		return "sort-selection"
	}
	return "unknown"
}

// NavigationState is where the display layer should be. Collection is set
// only for NavigationCollectionDetails.
type NavigationState struct {
	Kind       NavigationKind
	Collection domain.Collection
}

type ResultKind int

const (
	ResultStart ResultKind = iota
	ResultLoading
	ResultShow
	ResultError
)

func (k ResultKind) String() string {
	switch k {
	case ResultStart:
		return "start"
	case ResultLoading:
		return "loading"
	case ResultShow:
		return "show"
	case ResultError:
		return "error"
	}
	return "unknown"
}

// ResultState describes the data axis. Err is set only for ResultError.
type ResultState struct {
	Kind ResultKind
	Err  error
}

// Message is the user-facing text for an error state.
func (r ResultState) Message() string {
	if r.Kind != ResultError {
		return ""
	}
	return network.UserMessage(r.Err)
}

// Action is an input from the display layer.
type Action interface {
	isAction()
}

type CollectionTapped struct{ Collection domain.Collection }

type PullToRefresh struct{}

type SortTapped struct{}

type SortSelected struct{ Kind domain.SortKind }

type SortCancelled struct{}

func (CollectionTapped) isAction() {}
func (PullToRefresh) isAction()    {}
func (SortTapped) isAction()       {}
func (SortSelected) isAction()     {}
func (SortCancelled) isAction()    {}
