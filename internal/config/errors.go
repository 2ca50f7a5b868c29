package config

import "errors"

var ErrMissingMongoURI = errors.New("MONGO_URI is required")
