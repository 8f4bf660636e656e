// Package service contains the application use cases. It sits between the
// HTTP handlers and the stores: handlers pass the authenticated user id and
// request data in, services enforce ownership, run multi-step changes in a
// transaction and publish task events once a change has been committed.
//
// Expected conditions come back as sentinel errors (ErrTaskNotFound, or the
// domain validation errors unchanged). Anything unexpected is wrapped in a
// TaskServiceError naming the failed operation. The API layer maps both to
// HTTP status codes.
//
// Authentication lives in the auth subpackage.
package service
