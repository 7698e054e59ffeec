package tmframe

import "github.com/sirupsen/logrus"

// _lg is the package-level logger, grounded on the teacher's define.go
// (var _lg = logrus.New() + SetLogger). Replace it with SetLogger to
// route this package's diagnostics into a host application's logger.
var _lg = logrus.New()

// SetLogger replaces the package-level logger used for diagnostics
// emitted by channel stage cycles (aborted cycles, rollbacks).
func SetLogger(l *logrus.Logger) {
	_lg = l
}
