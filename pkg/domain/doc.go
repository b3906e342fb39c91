// Package domain contains the entities exchanged between the API layer and the
// calculator service: profile requests, computed profiles, single metric
// values and batch items. They carry no transport or engine details so they
// can be shared across packages.
package domain
