// Package security holds the request gate and the per-key state it depends on:
// the client rate limiter and the failed-login attempt tracker. Both state
// stores come in an in-memory form, sharded so unrelated keys do not contend
// on one lock, and a Redis form for deployments running several replicas.
package security
