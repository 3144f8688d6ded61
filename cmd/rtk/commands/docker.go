package commands

import (
	"github.com/spf13/cobra"
)

var dockerCmd = &cobra.Command{
	Use:   "docker",
	Short: "Condensed docker subcommands",
}

var dockerPsCmd = &cobra.Command{
	Use:   "ps [args...]",
	Short: "One line per container",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, "docker-ps", "docker_ps", "docker", append([]string{"ps"}, args...)...)
	},
}

var dockerImagesCmd = &cobra.Command{
	Use:   "images [args...]",
	Short: "One line per image",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, "docker-images", "docker_images", "docker", append([]string{"images"}, args...)...)
	},
}

var dockerLogsCmd = &cobra.Command{
	Use:   "logs <container> [args...]",
	Short: "Deduplicated container logs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, "docker-logs", "docker_logs", "docker", append([]string{"logs"}, args...)...)
	},
}

var kubectlCmd = &cobra.Command{
	Use:   "kubectl",
	Short: "Condensed kubectl subcommands",
}

var kubectlPodsCmd = &cobra.Command{
	Use:   "pods [args...]",
	Short: "One line per pod",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, "kubectl-pods", "kubectl_pods", "kubectl", append([]string{"get", "pods"}, args...)...)
	},
}

var kubectlServicesCmd = &cobra.Command{
	Use:   "services [args...]",
	Short: "One line per service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, "kubectl-services", "kubectl_services", "kubectl", append([]string{"get", "services"}, args...)...)
	},
}

var kubectlLogsCmd = &cobra.Command{
	Use:   "logs <pod> [args...]",
	Short: "Deduplicated pod logs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, "kubectl-logs", "kubectl_logs", "kubectl", append([]string{"logs"}, args...)...)
	},
}

func init() {
	dockerCmd.AddCommand(dockerPsCmd)
	dockerCmd.AddCommand(dockerImagesCmd)
	dockerCmd.AddCommand(dockerLogsCmd)
	rootCmd.AddCommand(dockerCmd)

	kubectlCmd.AddCommand(kubectlPodsCmd)
	kubectlCmd.AddCommand(kubectlServicesCmd)
	kubectlCmd.AddCommand(kubectlLogsCmd)
	rootCmd.AddCommand(kubectlCmd)
}
