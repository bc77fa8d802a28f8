// Package mongo implements the store interfaces on MongoDB.
//
// Users live in the "users" collection with a unique index on email; tasks
// live in "tasks" and every task query filters on user_id as well as _id.
// Documents use UUID strings as _id so IDs look the same across backends.
package mongo
