// Package gesture classifies one continuous pointer interaction as a tap, a
// press-and-hold or a horizontal swipe. A hold timer races a movement
// threshold so the user never has to declare intent up front.
package gesture
