// File: utils/constants.go
package utils

import "time"

// ClientSessionCookie is the cookie carrying the signed client session id.
const ClientSessionCookie = "mm_session"

// ClientSessionTTL is how long a client session cookie stays valid.
const ClientSessionTTL = 365 * 24 * time.Hour

// HomePath is where customers land after a successful booking.
const HomePath = "/home"
