package modal

import "log/slog"

// MissedModalIDErrorMessage is logged verbatim whenever an id-keyed
// operation receives an empty id.
const MissedModalIDErrorMessage = "modal: id is missing, pass the id returned by ShowModal"

// reportMissingID emits the missing-id diagnostic for op.
func (r *Registry) reportMissingID(op string) {
	r.logger.Warn(MissedModalIDErrorMessage, slog.String("code", "M001"), slog.String("op", op))
	r.metrics.diagnostic(op)
}
