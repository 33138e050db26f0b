package probe

import "errors"

// ErrConnectorUnavailable is returned by SmbclientConnector.Check when
// the smbclient binary cannot be found. This is a fatal setup error:
// without a working connector every probe would fail identically and
// the verdict would be meaningless.
var ErrConnectorUnavailable = errors.New("smbclient binary not found")
