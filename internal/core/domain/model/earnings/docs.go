// Package earnings provides the rolling earnings aggregates of the courier.
//
// The Ledger tracks the "today" bucket and the pending (withdrawable) balance.
// Both are credited exactly once per completed order by settlement, after the
// delivery is confirmed server-side. A daily rollover zeroes the today bucket.
package earnings
