package model

import "fmt"

// sampleRecords builds n records named GENE1..GENEn / PARTNER1..PARTNERn.
func sampleRecords(n int) []Record {
	out := make([]Record, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Record{
			ID:             ObjectID{OID: fmt.Sprintf("oid-%d", i)},
			HostGeneName:   fmt.Sprintf("GENE%d", i),
			TargetGeneName: fmt.Sprintf("PARTNER%d", i),
			HostSequence:   "MKV",
			TargetSequence: "ARND",
		})
	}
	return out
}
