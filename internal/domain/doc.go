// Package domain contains the core business entities, value objects, and
// domain logic of the application: users, their credentials policy, and the
// tasks they own. It is independent of any storage or delivery mechanism.
package domain
