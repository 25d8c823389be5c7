package currencycloud

import (
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/audit"
	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/session"
)

// OnBehalfOfDo runs work with every request of c made on behalf of id.
//
// id must be a UUID and no other OnBehalfOfDo may be running on c. The
// override is removed when work returns or panics; the error returned by
// work is returned unchanged.
func (c *Client) OnBehalfOfDo(id string, work func() error) error {
	return c.session.Do(id, work)
}

// OnBehalfOfWithin is OnBehalfOfDo for work that produces a result.
func OnBehalfOfWithin[T any](c *Client, id string, work func() (T, error)) (T, error) {
	return session.Within(c.session, id, work)
}

// OnBehalfOf returns the identity requests are currently made on behalf of,
// or "" outside OnBehalfOfDo.
func (c *Client) OnBehalfOf() string {
	return c.session.OnBehalfOf()
}

// scopeObserver logs and audits on-behalf-of scopes.
type scopeObserver struct {
	log     *zap.Logger
	auditor audit.Auditor
	apiURL  string
}

func (o *scopeObserver) ScopeEntered(id string) {
	o.log.Info("acting on behalf of another account", zap.String("on-behalf-of", id))
	o.auditor.Log(audit.OnBehalfOfEvent{ActingFor: id, Operation: audit.OperationEnter, APIURL: o.apiURL})
}

func (o *scopeObserver) ScopeExited(id string, err error) {
	if err != nil {
		o.log.Warn("stopped acting on behalf of another account after a failure",
			zap.String("on-behalf-of", id),
			zap.Error(err),
		)
	} else {
		o.log.Info("stopped acting on behalf of another account", zap.String("on-behalf-of", id))
	}
	o.auditor.Log(audit.OnBehalfOfEvent{ActingFor: id, Operation: audit.OperationExit, APIURL: o.apiURL, Err: err})
}

func (o *scopeObserver) ScopeRejected(id string, err error) {
	o.log.Error("refused to act on behalf of another account",
		zap.String("on-behalf-of", id),
		zap.Error(err),
	)
	o.auditor.Log(audit.OnBehalfOfEvent{ActingFor: id, Operation: audit.OperationReject, APIURL: o.apiURL, Err: err})
}
