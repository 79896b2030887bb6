package queries

import (
	"errors"

	"freight/internal/core/application/filters"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
	"freight/internal/pkg/paging"
)

var ErrFindOpenOrdersQueryIsNotConstructed = errors.New(
	"FindOpenOrdersQuery must be created via NewFindOpenOrdersQuery constructor",
)

// FindOpenOrdersQuery asks for one page of the orders a driver could take.
//
// Example:
//
//	query, err := NewFindOpenOrdersQuery(userID, filters.Fee, 0)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
type FindOpenOrdersQuery struct {
	userID kernel.UUID
	key    filters.Key
	page   paging.Request

	guard guard.ConstructorGuard
}

// NewFindOpenOrdersQuery fails with *errs.UnknownFilterKeyError for an unsupported key
// and *errs.ValueIsInvalidError for a negative page index.
func NewFindOpenOrdersQuery(userID kernel.UUID, key filters.Key, pageIndex int) (FindOpenOrdersQuery, error) {
	page, pageErr := paging.NewRequest(pageIndex)
	if err := errors.Join(userID.Validate(), key.Validate(), pageErr); err != nil {
		return FindOpenOrdersQuery{}, err
	}

	return FindOpenOrdersQuery{
		userID: userID,
		key:    key,
		page:   page,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q FindOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrFindOpenOrdersQueryIsNotConstructed)
}

func (q FindOpenOrdersQuery) UserID() kernel.UUID {
	return q.userID
}

func (q FindOpenOrdersQuery) Key() filters.Key {
	return q.key
}

func (q FindOpenOrdersQuery) Page() paging.Request {
	return q.page
}
