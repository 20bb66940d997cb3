package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yanqian/lung-visualizer/internal/domain/assessment"
	"github.com/yanqian/lung-visualizer/internal/domain/cost"
	"github.com/yanqian/lung-visualizer/internal/domain/health"
	"github.com/yanqian/lung-visualizer/internal/domain/lungviz"
	"github.com/yanqian/lung-visualizer/pkg/logger"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Print the assessment report for a smoking profile as JSON",
	RunE:  runAssess,
}

var (
	assessCigarettes float64
	assessYears      float64
	assessNicotine   float64
	assessTar        float64
	assessPackPrice  float64
	assessPackSize   int
	assessCurrency   string
)

func init() {
	assessCmd.Flags().Float64Var(&assessCigarettes, "cigarettes", 0, "Cigarettes per day (required)")
	assessCmd.Flags().Float64Var(&assessYears, "years", 0, "Years smoked (required)")
	assessCmd.Flags().Float64Var(&assessNicotine, "nicotine", health.DefaultNicotineMg, "Nicotine per cigarette in mg")
	assessCmd.Flags().Float64Var(&assessTar, "tar", health.DefaultTarMg, "Tar per cigarette in mg")
	assessCmd.Flags().Float64Var(&assessPackPrice, "pack-price", 100, "Price of one pack")
	assessCmd.Flags().IntVar(&assessPackSize, "pack-size", cost.DefaultPackSize, "Cigarettes per pack")
	assessCmd.Flags().StringVar(&assessCurrency, "currency", "NT$", "Currency label for the spending section")

	if err := assessCmd.MarkFlagRequired("cigarettes"); err != nil {
		panic(fmt.Sprintf("failed to mark cigarettes flag as required: %v", err))
	}
	if err := assessCmd.MarkFlagRequired("years"); err != nil {
		panic(fmt.Sprintf("failed to mark years flag as required: %v", err))
	}

	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, _ []string) error {
	log := logger.NewWithWriter(cmd.ErrOrStderr())
	svc := assessment.NewService(assessment.Config{
		Currency:     assessCurrency,
		PricePerPack: assessPackPrice,
		PackSize:     assessPackSize,
	}, lungviz.NewService(lungviz.Config{}, nil, log), log)

	report, err := svc.Assess(commandContext(cmd), assessment.Request{
		Profile: health.SmokingProfile{
			CigarettesPerDay: assessCigarettes,
			YearsSmoked:      assessYears,
			NicotineMg:       assessNicotine,
			TarMg:            assessTar,
		},
		PricePerPack: assessPackPrice,
		PackSize:     assessPackSize,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
