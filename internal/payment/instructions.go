package payment

import (
	"strings"

	"hridhayam-client/internal/order"
)

// InstructionMap holds the after-order steps shown per payment method.
var InstructionMap = map[order.PaymentMethod][]string{
	order.MethodCOD: {
		"Your order will be delivered to {{address}}",
		"Keep {{balance}} ready in cash when the courier arrives",
		"Pay the courier directly and keep the receipt",
	},

	order.MethodOnline: {
		"We received {{paid}} for order {{order_id}}",
		"Payment reference: {{transaction_id}}",
		"Any pre-order balance of {{balance}} is collected when the piece is ready",
	},
}

func GetInstructions(method order.PaymentMethod) []string {
	if steps, ok := InstructionMap[method]; ok {
		return steps
	}

	return []string{
		"Check My Orders for the status of your order",
	}
}

type InstructionVars map[string]string

// InjectVariables fills {{key}} placeholders. Unknown placeholders are left untouched.
func InjectVariables(
	steps []string,
	vars InstructionVars,
) []string {
	result := make([]string, 0, len(steps))

	for _, step := range steps {
		updated := step
		for key, value := range vars {
			updated = strings.ReplaceAll(
				updated,
				"{{"+key+"}}",
				value,
			)
		}
		result = append(result, updated)
	}

	return result
}
