// Package order holds the Order aggregate and the status state machine of the
// order desk.
//
// The package includes:
//   - Order: customer details, item snapshots, total, status and the courier holding it
//   - Item: an immutable snapshot of one cart line
//   - Status: the six lifecycle literals (new, cooking, ready, delivering, completed, cancelled)
//   - DeliveryType: pickup or delivery
//   - PublicCode and SecretCode: the shareable and the private order identifiers
//
// Status changes are applied through Order.ChangeStatus, which carries the
// courier side effects of each target status and never leaves a partial write.
package order
