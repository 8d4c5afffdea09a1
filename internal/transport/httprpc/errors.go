package httprpc

import "github.com/chris-alexander-pop/chord-ring/internal/apperrors"

var errMalformedID = apperrors.Malformed("httprpc: id is not a base-10 integer", nil)
