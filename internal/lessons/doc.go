// Package lessons holds the prompts, tools and workflows the example programs
// share.
package lessons
