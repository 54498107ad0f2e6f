package domain

import (
	"fmt"

	apperrors "github.com/louisbranch/mocktrial/internal/platform/errors"
	"google.golang.org/grpc/status"
)

// callError folds the service's error details into one message an agent can
// act on: the stable tag and the localized explanation.
func callError(operation string, err error) error {
	tag, message, ok := apperrors.StatusDetails(err)
	if ok && tag != "" {
		return fmt.Errorf("%s failed [%s]: %s", operation, tag, message)
	}
	if st, isStatus := status.FromError(err); isStatus {
		return fmt.Errorf("%s failed: %s: %s", operation, st.Code(), st.Message())
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}
