package payment

import (
	"strconv"
	"strings"
)

// Method ids match the checkout payment options.
const (
	MethodCOD      = "cod"
	MethodTransfer = "transfer"
	MethodEWallet  = "ewallet"
)

// InstructionMap holds the steps shown on the order success screen. Steps
// may reference {{amount}} and {{order_id}}.
var InstructionMap = map[string][]string{
	MethodCOD: {
		"Pesanan akan dikirim ke alamat tujuan",
		"Siapkan uang tunai sebesar {{amount}} saat kurir tiba",
		"Pastikan nominal pembayaran sesuai dengan total pesanan",
		"Lakukan pembayaran langsung kepada kurir",
		"Simpan bukti pembayaran dari kurir",
	},

	MethodTransfer: {
		"Buka aplikasi mobile banking atau ATM bank Anda",
		"Pilih menu Transfer ke rekening HerbaNusa",
		"Masukkan nominal {{amount}}",
		"Tulis {{order_id}} pada kolom berita transfer",
		"Simpan bukti transfer sampai pesanan diterima petani",
	},

	MethodEWallet: {
		"Buka aplikasi e-wallet pilihan Anda",
		"Pilih menu Bayar atau Scan QR",
		"Masukkan nominal {{amount}}",
		"Cantumkan {{order_id}} pada catatan pembayaran",
		"Selesaikan pembayaran dengan PIN Anda",
	},
}

func GetInstructions(method string) []string {
	if steps, ok := InstructionMap[method]; ok {
		return steps
	}

	return []string{
		"Ikuti instruksi pembayaran yang dikirimkan oleh petani",
	}
}

type InstructionVars map[string]string

func InjectVariables(
	steps []string,
	vars InstructionVars,
) []string {
	result := make([]string, 0, len(steps))

	for _, step := range steps {
		updated := step
		for key, value := range vars {
			updated = strings.ReplaceAll(updated, "{{"+key+"}}", value)
		}
		result = append(result, updated)
	}

	return result
}

// Instructions renders the steps for method with the order's total and id.
func Instructions(method, orderID string, amount int64) []string {
	return InjectVariables(GetInstructions(method), InstructionVars{
		"amount":   FormatRupiah(amount),
		"order_id": orderID,
	})
}

// FormatRupiah renders whole rupiah with dot thousands separators, e.g.
// Rp100.000.
func FormatRupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return sign + "Rp" + b.String()
}
